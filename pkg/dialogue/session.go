package dialogue

// State is the dialogue gate's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateActiveLine
	StateAwaitingAdvance
	StateComplete
)

// Session is a modal run of scripted dialogue: an ordered sequence of
// lines, a speaker label, an optional portrait key, and a completion
// callback. A session exists only while dialogue is active; it is
// discarded on completion.
type Session struct {
	lines      []string
	speaker    string
	portrait   string
	index      int
	state      State
	onComplete func()
	completed  bool
}

// NewSession starts a dialogue session on its first line. onComplete
// may be nil. An empty line list yields an already-complete session;
// callers should check State before presenting it.
func NewSession(lines []string, speaker string, onComplete func(), portrait string) *Session {
	s := &Session{
		lines:      lines,
		speaker:    speaker,
		portrait:   portrait,
		onComplete: onComplete,
	}
	if len(lines) == 0 {
		s.state = StateComplete
		s.complete()
		return s
	}
	s.state = StateActiveLine
	return s
}

func (s *Session) State() State     { return s.state }
func (s *Session) Speaker() string  { return s.speaker }
func (s *Session) Portrait() string { return s.portrait }

// Active reports whether the session still owns input routing.
func (s *Session) Active() bool {
	return s.state == StateActiveLine || s.state == StateAwaitingAdvance
}

// Line returns the currently displayed line, or "" when the session is
// not active.
func (s *Session) Line() string {
	if !s.Active() {
		return ""
	}
	return s.lines[s.index]
}

// Shown marks the current line as rendered, moving active-line to
// awaiting-advance. Idempotent.
func (s *Session) Shown() {
	if s.state == StateActiveLine {
		s.state = StateAwaitingAdvance
	}
}

// Advance is the sole externally triggered transition: show the next
// line if any remain, otherwise complete the session and invoke
// onComplete exactly once. Returns true when the session completed.
func (s *Session) Advance() bool {
	if !s.Active() {
		return s.state == StateComplete
	}
	if s.index+1 < len(s.lines) {
		s.index++
		s.state = StateActiveLine
		return false
	}
	s.state = StateComplete
	s.complete()
	return true
}

func (s *Session) complete() {
	if s.completed {
		return
	}
	s.completed = true
	if s.onComplete != nil {
		s.onComplete()
	}
}
