package tabs

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MenuState is the state of the "more" dropdown.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// CloseReason records why the dropdown closed.
type CloseReason int

const (
	CloseOutside CloseReason = iota
	CloseTrigger
	CloseSelect
	CloseTabSelected
)

func (r CloseReason) String() string {
	switch r {
	case CloseTrigger:
		return "trigger"
	case CloseSelect:
		return "select"
	case CloseTabSelected:
		return "tab-selected"
	default:
		return "outside"
	}
}

// Menu is the dropdown behind the more trigger. Every transition out of the
// open state lands in closed; there is no other state.
type Menu struct {
	state     MenuState
	cursor    int
	lastClose CloseReason
}

// State returns the current state.
func (m *Menu) State() MenuState {
	return m.state
}

// IsOpen reports whether the dropdown is showing.
func (m *Menu) IsOpen() bool {
	return m.state == MenuOpen
}

// Toggle handles a click on the trigger.
func (m *Menu) Toggle() MenuState {
	if m.state == MenuOpen {
		m.Close(CloseTrigger)
	} else {
		m.state = MenuOpen
		m.cursor = 0
	}
	return m.state
}

// Close moves the dropdown to closed and reports whether it was open. The
// reason is kept only when it actually closed the dropdown.
func (m *Menu) Close(reason CloseReason) bool {
	was := m.state == MenuOpen
	if was {
		m.lastClose = reason
	}
	m.state = MenuClosed
	m.cursor = 0
	return was
}

// LastClose returns why the dropdown last went from open to closed.
func (m *Menu) LastClose() CloseReason {
	return m.lastClose
}

// Cursor returns the highlighted entry index.
func (m *Menu) Cursor() int {
	return m.cursor
}

// MoveCursor moves the highlight by delta, wrapping within n entries.
func (m *Menu) MoveCursor(delta, n int) {
	if n <= 0 {
		m.cursor = 0
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// SetCursor places the highlight on idx when it is in range.
func (m *Menu) SetCursor(idx, n int) {
	if idx >= 0 && idx < n {
		m.cursor = idx
	}
}

// Select returns the highlighted entry of items and closes the dropdown.
func (m *Menu) Select(items []Tab) (Tab, bool) {
	if m.state != MenuOpen || len(items) == 0 {
		return Tab{}, false
	}
	idx := m.cursor
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	m.Close(CloseSelect)
	return items[idx], true
}

// FilterTabs narrows tabs to fuzzy matches on label, short label or id,
// preserving input order.
func FilterTabs(tabs []Tab, query string) []Tab {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneTabs(tabs)
	}
	out := make([]Tab, 0, len(tabs))
	for _, t := range tabs {
		if fuzzy.MatchNormalizedFold(trimmed, t.Label) ||
			fuzzy.MatchNormalizedFold(trimmed, t.ShortLabel) ||
			fuzzy.MatchNormalizedFold(trimmed, t.ID) {
			out = append(out, t)
		}
	}
	return out
}
