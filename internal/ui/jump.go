package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/tabs"
)

// jumpPrompt searches every tab, visible or overflowed, by label.
type jumpPrompt struct {
	input  textinput.Model
	cursor int
}

func newJumpPrompt() *jumpPrompt {
	ti := textinput.New()
	ti.Prompt = "go to › "
	ti.Placeholder = "tab name"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &jumpPrompt{input: ti}
}

func (m *Model) jumpMatches() []tabs.Tab {
	if m.jump == nil {
		return nil
	}
	return tabs.FilterTabs(m.bar.Tabs(), m.jump.input.Value())
}

func (m *Model) openJump() {
	if m.bar.Menu().IsOpen() {
		m.closeMenu(tabs.CloseOutside)
	}
	m.jump = newJumpPrompt()
	m.mode = ModeJump
}

func (m *Model) closeJump() {
	m.jump = nil
	m.mode = ModeBrowse
}

func (m *Model) handleJump(msg tea.Msg) (bool, tea.Cmd) {
	if m.jump == nil {
		return false, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	matches := m.jumpMatches()
	switch keyMsg.String() {
	case "esc":
		m.closeJump()
		return true, nil
	case "up", "ctrl+p":
		if m.jump.cursor > 0 {
			m.jump.cursor--
		}
		return true, nil
	case "down", "ctrl+n":
		if m.jump.cursor < len(matches)-1 {
			m.jump.cursor++
		}
		return true, nil
	case "enter":
		if len(matches) == 0 {
			return true, nil
		}
		target := matches[min(m.jump.cursor, len(matches)-1)]
		events.UI.Jump(m.jump.input.Value(), target.ID)
		m.closeJump()
		return true, m.selectTab(target.ID, false)
	}
	var cmd tea.Cmd
	m.jump.input, cmd = m.jump.input.Update(msg)
	m.jump.cursor = 0
	return true, cmd
}

func (m *Model) viewJump() []styledLine {
	if m.jump == nil {
		return nil
	}
	lines := []styledLine{{text: m.jump.input.View(), raw: true}}
	matches := m.jumpMatches()
	if len(matches) == 0 {
		return append(lines, styledLine{text: "  no matching tabs", style: styles.Info})
	}
	for i, t := range matches {
		style := styles.MenuItem
		if i == m.jump.cursor {
			style = styles.MenuSelected
		}
		lines = append(lines, styledLine{text: "  " + t.Label, style: style})
	}
	return lines
}
