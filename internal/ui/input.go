package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/tabs"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.errMsg = ""
	if m.bar.Menu().IsOpen() {
		return m.handleMenuKey(keyMsg)
	}
	if m.filtering {
		return m.handleFilterKey(keyMsg)
	}
	now := m.now()
	if m.chord.prefix != "" {
		if m.chord.pending(now) {
			if target := m.resolveChord(keyMsg.String()); target != "" {
				return m.selectTab(target, false)
			}
			return nil
		}
		m.chord = chordState{}
	}
	switch {
	case key.Matches(keyMsg, m.keys.NextTab):
		return m.cycleTab(1)
	case key.Matches(keyMsg, m.keys.PrevTab):
		return m.cycleTab(-1)
	case key.Matches(keyMsg, m.keys.More):
		m.toggleMenu()
		return nil
	case key.Matches(keyMsg, m.keys.Jump):
		m.openJump()
		return nil
	case key.Matches(keyMsg, m.keys.Save):
		return m.saveNow()
	case key.Matches(keyMsg, m.keys.Publish):
		return m.publish()
	case key.Matches(keyMsg, m.keys.HelpTab):
		return m.selectTab(tabHelp, false)
	case key.Matches(keyMsg, m.keys.Chord):
		m.chord = chordState{prefix: keyMsg.String(), at: now}
		return nil
	}
	return m.handleScreenKey(keyMsg)
}

func (m *Model) handleScreenKey(msg tea.KeyMsg) tea.Cmd {
	switch m.bar.Active() {
	case tabCompose:
		return m.handleComposeKey(msg)
	case tabPreview:
		return m.handlePreviewKey(msg)
	case tabDrafts:
		return m.handleDraftsKey(msg)
	case tabDetails:
		return m.handleDetailsKey(msg)
	case tabMuse:
		return m.handleMuseKey(msg)
	}
	return nil
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	before := m.bar.Active()
	id := m.bar.Cycle(delta)
	if id == before {
		return nil
	}
	events.Tabs.Select(id, false)
	m.revealActiveTab()
	return m.enterTab(id)
}

// enterTab prepares the screen behind id.
func (m *Model) enterTab(id string) tea.Cmd {
	m.filtering = false
	switch id {
	case tabPreview:
		m.syncViewport()
		m.renderPreview()
	case tabDrafts:
		return m.listDraftsCmd()
	case tabMuse:
		m.syncMuse()
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	items := m.menuItems()
	menu := m.bar.Menu()
	switch msg.Type {
	case tea.KeyEsc:
		m.closeMenu(tabs.CloseOutside)
	case tea.KeyUp:
		menu.MoveCursor(-1, len(items))
	case tea.KeyDown:
		menu.MoveCursor(1, len(items))
	case tea.KeyEnter:
		if tab, ok := menu.Select(items); ok {
			events.Tabs.Menu(tabs.MenuClosed.String(), tabs.CloseSelect.String())
			return m.selectTab(tab.ID, true)
		}
	case tea.KeyBackspace:
		if r := []rune(m.menuQuery); len(r) > 0 {
			m.menuQuery = string(r[:len(r)-1])
			menu.SetCursor(0, len(m.menuItems()))
		}
	case tea.KeyRunes:
		m.menuQuery += string(msg.Runes)
		menu.SetCursor(0, len(m.menuItems()))
	default:
		if key.Matches(msg, m.keys.More) {
			m.toggleMenu()
		}
	}
	return nil
}
