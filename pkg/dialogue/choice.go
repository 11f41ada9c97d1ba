package dialogue

// Choice is one selectable option. Label is what the menu renders;
// Value is the structured payload handed to the selection callback, so
// callers never parse data back out of display strings.
type Choice struct {
	Label string
	Value string
}

// Menu is a modal list-selection overlay. It may be opened from inside
// a dialogue completion callback, nesting modal state; suspend
// ownership transfers to the menu in that case.
type Menu struct {
	choices  []Choice
	index    int
	onSelect func(Choice)
	open     bool
}

// NewMenu opens a menu over choices with the highlight reset to the
// first entry. onSelect may be nil.
func NewMenu(choices []Choice, onSelect func(Choice)) *Menu {
	return &Menu{
		choices:  choices,
		onSelect: onSelect,
		open:     len(choices) > 0,
	}
}

// Open reports whether the menu is visible and awaiting a selection.
func (m *Menu) Open() bool { return m.open }

// Choices returns the option list in declared order.
func (m *Menu) Choices() []Choice { return m.choices }

// Index returns the highlighted index.
func (m *Menu) Index() int { return m.index }

// Selected returns the highlighted choice.
func (m *Menu) Selected() Choice {
	if len(m.choices) == 0 {
		return Choice{}
	}
	return m.choices[m.index]
}

// MoveUp moves the highlight one entry up, clamping at the top. No
// wraparound.
func (m *Menu) MoveUp() {
	if m.index > 0 {
		m.index--
	}
}

// MoveDown moves the highlight one entry down, clamping at the bottom.
func (m *Menu) MoveDown() {
	if m.index < len(m.choices)-1 {
		m.index++
	}
}

// Confirm closes the menu and invokes the selection callback with the
// highlighted choice at confirm time.
func (m *Menu) Confirm() Choice {
	if !m.open {
		return Choice{}
	}
	selected := m.choices[m.index]
	m.open = false
	if m.onSelect != nil {
		m.onSelect(selected)
	}
	return selected
}

// Cancel closes the menu without selecting. The callback is not
// invoked.
func (m *Menu) Cancel() {
	m.open = false
}
