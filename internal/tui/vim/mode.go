package vim

import "strconv"

// Mode represents the current input mode of the browser.
type Mode int

const (
	ModeNormal Mode = iota
	// ModeSearch is active while typing a query after "/".
	ModeSearch
	// ModeGoto is active while typing a page number after ":".
	ModeGoto
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSearch:
		return "SEARCH"
	case ModeGoto:
		return "GOTO"
	default:
		return "UNKNOWN"
	}
}

// Prompt returns the prompt shown before the input buffer.
func (m Mode) Prompt() string {
	switch m {
	case ModeSearch:
		return "/"
	case ModeGoto:
		return ":"
	default:
		return ""
	}
}

// ModeManager handles mode state, the input buffer and count prefixes.
type ModeManager struct {
	current  Mode
	buffer   []rune
	count    int
	hasCount bool
}

// NewModeManager creates a new mode manager starting in normal mode.
func NewModeManager() *ModeManager {
	return &ModeManager{
		current: ModeNormal,
		count:   1,
	}
}

// Current returns the current mode.
func (m *ModeManager) Current() Mode {
	return m.current
}

// SetMode changes the current mode. Leaving an input mode clears the buffer.
func (m *ModeManager) SetMode(mode Mode) {
	if m.current != mode {
		m.buffer = nil
	}
	m.current = mode
}

// IsNormal returns true if in normal mode.
func (m *ModeManager) IsNormal() bool {
	return m.current == ModeNormal
}

// IsInput returns true while the user is typing into the buffer.
func (m *ModeManager) IsInput() bool {
	return m.current == ModeSearch || m.current == ModeGoto
}

// Buffer returns the input buffer.
func (m *ModeManager) Buffer() string {
	return string(m.buffer)
}

// Append adds typed runes to the buffer. In goto mode only digits are kept.
func (m *ModeManager) Append(runes ...rune) {
	for _, r := range runes {
		if m.current == ModeGoto && (r < '0' || r > '9') {
			continue
		}
		m.buffer = append(m.buffer, r)
	}
}

// Backspace removes the last rune from the buffer.
func (m *ModeManager) Backspace() {
	if len(m.buffer) > 0 {
		m.buffer = m.buffer[:len(m.buffer)-1]
	}
}

// Submit returns the buffer and returns to normal mode.
func (m *ModeManager) Submit() string {
	s := string(m.buffer)
	m.SetMode(ModeNormal)
	return s
}

// PageNumber parses the buffer as a page number.
func (m *ModeManager) PageNumber() (int, bool) {
	n, err := strconv.Atoi(string(m.buffer))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Count returns the current count (default 1).
func (m *ModeManager) Count() int {
	return m.count
}

// AppendCount adds a digit to the count.
func (m *ModeManager) AppendCount(digit int) {
	if !m.hasCount {
		m.count = digit
		m.hasCount = true
	} else {
		m.count = m.count*10 + digit
	}
}

// ResetCount resets the count to default (1).
func (m *ModeManager) ResetCount() {
	m.count = 1
	m.hasCount = false
}

// HasCount returns true if a count was explicitly set.
func (m *ModeManager) HasCount() bool {
	return m.hasCount
}

// Reset resets all mode state to defaults.
func (m *ModeManager) Reset() {
	m.current = ModeNormal
	m.buffer = nil
	m.ResetCount()
}
