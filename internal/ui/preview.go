package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/logging"
	"github.com/atomicstack/chapters/internal/preview"
)

// refreshPreview re-renders the chapter when the preview is showing and
// marks it stale otherwise.
func (m *Model) refreshPreview() {
	m.previewStale = true
	if m.bar.Active() == tabPreview {
		m.renderPreview()
	}
}

func (m *Model) renderPreview() {
	if !m.previewStale {
		return
	}
	m.previewStale = false
	md := preview.Markdown(m.draft, m.themeNames)
	if m.renderer == nil {
		m.viewport.SetContent(md)
		return
	}
	out, err := m.renderer.Render(md, m.previewWidth())
	if err != nil {
		logging.Error(err)
		m.previewErr = err.Error()
		m.viewport.SetContent(md)
		return
	}
	m.previewErr = ""
	m.viewport.SetContent(strings.TrimRight(out, "\n"))
}

func (m *Model) previewWidth() int {
	if m.width <= 0 {
		return fallbackViewWidth
	}
	return m.width - 2
}

// Fallback viewport size used before the terminal reports its size.
const (
	fallbackViewWidth  = 80
	fallbackViewHeight = 24
)

func (m *Model) syncViewport() {
	m.viewport.Width = m.width
	if m.width <= 0 {
		m.viewport.Width = fallbackViewWidth
	}
	m.viewport.Height = m.bodyHeight()
	if m.viewport.Height <= 0 {
		m.viewport.Height = fallbackViewHeight
	}
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) viewPreview() []styledLine {
	m.syncViewport()
	m.renderPreview()
	var lines []styledLine
	if m.previewErr != "" {
		lines = append(lines, styledLine{text: "Preview unavailable: " + m.previewErr, style: styles.Error})
	}
	for _, row := range strings.Split(m.viewport.View(), "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	return lines
}

func (m *Model) viewHelp() []styledLine {
	m.help.Width = m.width
	var lines []styledLine
	for _, row := range strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	return lines
}
