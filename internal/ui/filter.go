package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

// activeList returns the list behind the active tab, if it has one.
func (m *Model) activeList() *uistate.List {
	switch m.bar.Active() {
	case tabCompose:
		return m.blocks
	case tabDrafts:
		return m.drafts
	case tabDetails:
		return m.details
	case tabMuse:
		if m.museState != nil && !m.museState.Applicable() {
			return nil
		}
		return m.museList
	default:
		return nil
	}
}

func (m *Model) startFilter() {
	if m.activeList() != nil {
		m.filtering = true
	}
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	l := m.activeList()
	if l == nil {
		m.filtering = false
		return nil
	}
	changed := false
	switch msg.Type {
	case tea.KeyEsc:
		changed = l.ClearFilter()
		m.filtering = false
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		changed = l.DeleteFilterRuneBackward()
	case tea.KeyCtrlW:
		changed = l.DeleteFilterWordBackward()
	case tea.KeyLeft:
		l.MoveFilterCursor(-1)
	case tea.KeyRight:
		l.MoveFilterCursor(1)
	case tea.KeyUp:
		l.MoveCursor(-1)
	case tea.KeyDown:
		l.MoveCursor(1)
	case tea.KeyRunes, tea.KeySpace:
		changed = l.InsertFilterText(string(msg.Runes))
	}
	if changed && l == m.museList {
		m.syncMuse()
	}
	return nil
}

// filterLine shows the query with a cursor while filtering, or the kept
// filter afterwards.
func (m *Model) filterLine(l *uistate.List) (styledLine, bool) {
	if l == nil || (!m.filtering && l.Filter == "") {
		return styledLine{}, false
	}
	if !m.filtering {
		return styledLine{text: fmt.Sprintf("filter: %s (/ to edit, esc in filter to clear)", l.Filter), style: styles.Filter}, true
	}
	runes := []rune(l.Filter)
	pos := min(max(l.FilterCursor, 0), len(runes))
	text := "/ " + string(runes[:pos]) + "▏" + string(runes[pos:])
	return styledLine{text: text, style: styles.FilterPrompt}, true
}
