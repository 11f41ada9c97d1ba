package world

import "github.com/jwebster45206/tilequest/pkg/grid"

// TriggerType tags what a trigger does when the player's committed
// position enters its region.
type TriggerType string

const (
	TriggerBattle    TriggerType = "battle"    // start an encounter; suppressed once Flag is set
	TriggerExit      TriggerType = "exit"      // transition to another map
	TriggerBlocked   TriggerType = "blocked"   // advisory message, once per session
	TriggerNarrative TriggerType = "narrative" // scripted dialogue, optionally sets Flag
)

// Rect is an inclusive tile rectangle.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Contains reports whether p lies within the rectangle bounds.
func (r Rect) Contains(p grid.Position) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Exit is the destination of an exit trigger.
type Exit struct {
	Map      string        `json:"map"`
	Position grid.Position `json:"position"`
}

// Trigger is a data-declared map region with a type tag and payload.
// Declaring triggers as data rather than code lets per-map behavior
// vary without new control flow.
type Trigger struct {
	ID    string        `json:"id"`
	Type  TriggerType   `json:"type"`
	Tiles []grid.Position `json:"tiles,omitempty"`
	Rect  *Rect         `json:"rect,omitempty"`

	// Flag is the idempotency key. Battle triggers never re-fire once
	// the flag is set in the game state; narrative triggers set it on
	// completion.
	Flag string `json:"flag,omitempty"`

	Battle   string   `json:"battle,omitempty"`   // encounter map key, battle triggers
	Lines    []string `json:"lines,omitempty"`    // dialogue payload, blocked/narrative triggers
	Speaker  string   `json:"speaker,omitempty"`  // optional speaker label for Lines
	Exit     *Exit    `json:"exit,omitempty"`     // destination, exit triggers
	Cutscene string   `json:"cutscene,omitempty"` // optional cutscene key, narrative triggers
}

// Contains reports whether the trigger's region covers p.
func (t *Trigger) Contains(p grid.Position) bool {
	for _, tile := range t.Tiles {
		if tile == p {
			return true
		}
	}
	return t.Rect != nil && t.Rect.Contains(p)
}

// FlagLookup answers whether a named story flag is currently set.
type FlagLookup func(flag string) bool

// Detector evaluates the player's committed position against a map's
// trigger list. The detector itself is generic; per-map behavior lives
// in the trigger data.
type Detector struct {
	triggers []Trigger
	flags    FlagLookup
	warned   map[string]bool // blocked-trigger IDs already shown this session
}

// NewDetector builds a detector over triggers in their declared order.
// flags may be nil, in which case no flag is considered set.
func NewDetector(triggers []Trigger, flags FlagLookup) *Detector {
	return &Detector{
		triggers: triggers,
		flags:    flags,
		warned:   make(map[string]bool),
	}
}

// Evaluate returns the first trigger whose region contains pos, in
// declared order, or nil.
//
// Battle triggers with their completion flag set are skipped
// permanently. Blocked triggers fire at most once per in-memory
// session; the warning is flavor text and intentionally resets on
// scene reload.
func (d *Detector) Evaluate(pos grid.Position) *Trigger {
	for i := range d.triggers {
		t := &d.triggers[i]
		if !t.Contains(pos) {
			continue
		}
		switch t.Type {
		case TriggerBattle, TriggerNarrative:
			// The flag is the idempotency key: once set, the trigger
			// never fires again for that flag state.
			if t.Flag != "" && d.flags != nil && d.flags(t.Flag) {
				continue
			}
		case TriggerBlocked:
			if d.warned[t.ID] {
				continue
			}
			d.warned[t.ID] = true
		}
		return t
	}
	return nil
}
