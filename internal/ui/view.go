package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/state"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

const savedTimeLayout = "15:04"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []styledLine{{text: m.renderTabBar(), raw: true}}
	lines = append(lines, m.renderDropdown()...)
	lines = append(lines, m.viewJump()...)

	bodyTop := len(lines)
	m.hit = listHit{}
	body := m.viewBody()
	if m.hit.list != nil {
		m.hit.top += bodyTop
	}
	height := m.bodyHeight()
	if height > 0 {
		height -= bodyTop - 1
		if height < 1 {
			height = 1
		}
	}
	lines = append(lines, limitHeight(body, height, m.width)...)
	if m.height > 0 {
		for len(lines) < m.height-m.chromeRows()+1 {
			lines = append(lines, styledLine{})
		}
	}

	lines = append(lines, m.statusLine())
	if m.showFooter {
		m.help.Width = m.width
		lines = append(lines, styledLine{text: m.help.ShortHelpView(m.keys.ShortHelp()), raw: true})
	}
	return renderLines(applyWidth(lines, m.width))
}

// chromeRows counts the rows outside the body: tab bar, status line and
// the optional footer.
func (m *Model) chromeRows() int {
	rows := 2
	if m.showFooter {
		rows++
	}
	return rows
}

// bodyHeight is the number of rows available to the active screen, or -1
// when the height is unknown.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return -1
	}
	return max(m.height-m.chromeRows(), 1)
}

func (m *Model) viewBody() []styledLine {
	switch m.mode {
	case ModeBlockEditor:
		if m.editor != nil {
			return m.editor.view()
		}
	case ModeTitleForm, ModeMoodForm:
		if m.textForm != nil {
			return m.textForm.view()
		}
	}
	if !m.draftReady && m.repo != nil {
		return []styledLine{{text: "Opening draft…", style: styles.Info}}
	}
	var lines []styledLine
	switch m.bar.Active() {
	case tabCompose:
		lines = m.viewCompose(m.width)
		lines = append(lines, m.addHints())
	case tabPreview:
		lines = m.viewPreview()
	case tabDrafts:
		lines = m.viewDrafts(m.width)
	case tabDetails:
		lines = m.viewDetails(m.width)
	case tabMuse:
		lines = m.viewMuse(m.width)
	case tabHelp:
		lines = m.viewHelp()
	}
	if fl, ok := m.filterLine(m.activeList()); ok {
		lines = append(lines, fl)
	}
	return lines
}

// addHints lists the block kinds, dimming those the draft cannot take.
func (m *Model) addHints() styledLine {
	var parts []string
	for i, k := range composer.Kinds {
		label := fmt.Sprintf("%d %s", i+1, k)
		style := styles.Footer
		if !m.draft.Blocks.CanAdd(k) {
			style = styles.BlockEmpty
		}
		parts = append(parts, style.Render(label))
	}
	return styledLine{text: "add: " + strings.Join(parts, "  "), raw: true}
}

// viewList draws the window of l that fits in maxRows and records where it
// landed for mouse hits.
func (m *Model) viewList(l *uistate.List, width, maxRows int) []styledLine {
	if maxRows == 0 {
		maxRows = 1
	}
	if len(l.Items) == 0 {
		msg := "(no entries)"
		if l.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	visible, offset := l.Window(maxRows)
	lines := make([]styledLine, 0, len(visible))
	for i, item := range visible {
		label := item.Label
		if item.Detail != "" {
			label += "  " + item.Detail
		}
		lines = append(lines, m.buildItemLine(item, label, offset+i, l, width))
	}
	m.hit = listHit{list: l, top: 1, rows: 1, offset: offset, count: len(visible)}
	return lines
}

// buildItemLine constructs a single styledLine for a list item.
// width is the target column width; when > 0 the text is padded so that
// the selected item's background spans the full container.
func (m *Model) buildItemLine(item uistate.Item, label string, idx int, current *uistate.List, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	selectDisplay := ""
	if current.MultiSelect && checkable(item) {
		mark := " "
		if current.IsSelected(item.ID) {
			mark = "✓"
			lineStyle = styles.CheckedItem
		}
		selectDisplay = fmt.Sprintf("[%s] ", mark)
	}
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + selectDisplay + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func checkable(item uistate.Item) bool {
	return item.Group != groupField && item.Group != groupMood
}

// statusLine shows the newest toast, or the save state of the open draft.
func (m *Model) statusLine() styledLine {
	if t, ok := m.toasts.Latest(); ok {
		style := styles.ToastInfo
		switch t.Kind {
		case state.ToastSuccess:
			style = styles.ToastSuccess
		case state.ToastError:
			style = styles.ToastError
		}
		return styledLine{text: t.Text, style: style}
	}
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if !m.draftReady {
		return styledLine{}
	}
	st := m.status.Status()
	title := m.draft.DisplayTitle()
	switch {
	case st.Err != nil:
		return styledLine{text: fmt.Sprintf("%s · Save failed: %v", title, st.Err), style: styles.Error}
	case st.Saving:
		return styledLine{text: title + " · Saving…", style: styles.Status}
	case st.Dirty:
		return styledLine{text: title + " · Unsaved changes", style: styles.StatusDirty}
	case st.Published():
		return styledLine{text: title + " · Published " + st.PublishedAt.Local().Format(savedTimeLayout), style: styles.Status}
	case !st.SavedAt.IsZero():
		return styledLine{text: title + " · Saved " + st.SavedAt.Local().Format(savedTimeLayout), style: styles.Status}
	}
	return styledLine{text: title, style: styles.Status}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncTabBar()
	m.syncViewport()
	m.refreshPreview()
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
