package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/tabs"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

// listHit maps body rows of the last drawn list back to its items.
type listHit struct {
	list   *uistate.List
	top    int
	rows   int
	offset int
	count  int
}

func (h listHit) index(y int) (int, bool) {
	if h.list == nil || h.rows <= 0 || y < h.top {
		return 0, false
	}
	i := (y - h.top) / h.rows
	if i >= h.count {
		return 0, false
	}
	return h.offset + i, true
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.mode != ModeBrowse {
		return nil
	}
	// regions are only recorded while drawing
	m.renderTabBar()
	m.renderDropdown()

	switch ev.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		dir := 1
		if ev.Button == tea.MouseButtonWheelUp {
			dir = -1
		}
		if ev.Y == 0 {
			m.scrollStrip(dir)
			return nil
		}
		if m.bar.Active() == tabPreview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(ev)
			return cmd
		}
		if l := m.activeList(); l != nil {
			l.MoveCursor(dir)
		}
		return nil
	case tea.MouseButtonLeft:
		if ev.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	r, hit := m.regionAt(ev.X, ev.Y)
	if !hit {
		if m.bar.Menu().IsOpen() {
			m.closeMenu(tabs.CloseOutside)
			return nil
		}
		if idx, ok := m.hit.index(ev.Y); ok {
			m.hit.list.Cursor = idx
		}
		return nil
	}
	switch r.kind {
	case regionTab:
		return m.selectTab(r.id, false)
	case regionTrigger:
		m.toggleMenu()
	case regionScrollLeft:
		m.scrollStrip(-1)
	case regionScrollRight:
		m.scrollStrip(1)
	case regionMenuItem:
		if m.bar.Menu().Close(tabs.CloseSelect) {
			events.Tabs.Menu(tabs.MenuClosed.String(), tabs.CloseSelect.String())
		}
		return m.selectTab(r.id, true)
	}
	return nil
}
