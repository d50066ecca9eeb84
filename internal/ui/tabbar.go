package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/tabs"
)

// Cell-based tab metrics. The layout arithmetic is unit-agnostic, so the
// terminal host feeds it cell widths instead of the pixel design values.
const (
	tabCellWidth     = 14
	moreCellWidth    = 8
	shortLabelWidth  = 60
	stripScrollStep  = 10
	dropdownMinWidth = 16
	moreLabel        = "More ▾"
)

const (
	tabCompose = "compose"
	tabPreview = "preview"
	tabDrafts  = "drafts"
	tabDetails = "details"
	tabMuse    = "muse"
	tabHelp    = "help"
)

// DefaultTabMetrics returns the cell metrics used when none are configured.
func DefaultTabMetrics() tabs.Metrics {
	return tabs.Metrics{
		TabWidth:        tabCellWidth,
		MoreWidth:       moreCellWidth,
		MinVisible:      tabs.MinVisibleTabs,
		ScrollThreshold: 0,
		ScrollStep:      stripScrollStep,
	}
}

func defaultTabs() []tabs.Tab {
	return []tabs.Tab{
		{ID: tabCompose, Label: "Compose", ShortLabel: "Write", Priority: 5},
		{ID: tabPreview, Label: "Preview", ShortLabel: "View", Priority: 4},
		{ID: tabDrafts, Label: "Drafts", Priority: 3},
		{ID: tabDetails, Label: "Mood & Themes", ShortLabel: "Meta", Priority: 2},
		{ID: tabMuse, Label: "Muse", Priority: 2},
		{ID: tabHelp, Label: "Help", ShortLabel: "?", Priority: 0},
	}
}

type regionKind int

const (
	regionTab regionKind = iota
	regionTrigger
	regionScrollLeft
	regionScrollRight
	regionMenuItem
)

// region is a clickable span of the screen, in cells.
type region struct {
	kind       regionKind
	id         string
	row        int
	start, end int
}

func (r region) contains(x, y int) bool {
	return y == r.row && x >= r.start && x < r.end
}

func (m *Model) tabWidth() int {
	if w := m.bar.Metrics().TabWidth; w > 0 {
		return w
	}
	return tabCellWidth
}

func (m *Model) shortLabels() bool {
	return m.width > 0 && m.width < shortLabelWidth
}

// syncTabBar feeds the latest width to the bar and re-measures the strip.
func (m *Model) syncTabBar() {
	if m.bar.SetWidth(m.width) {
		layout := m.bar.Layout()
		events.Tabs.Layout(m.width, layout.Mode().String(), len(layout.Visible), len(layout.Overflow))
	}
	layout := m.bar.Layout()
	m.bar.Strip().Resize(len(layout.Visible)*m.tabWidth(), m.bar.StripViewWidth())
	m.revealActiveTab()
}

func (m *Model) revealActiveTab() {
	layout := m.bar.Layout()
	for i, t := range layout.Visible {
		if t.ID == m.bar.Active() {
			w := m.tabWidth()
			m.bar.Strip().Reveal(i*w, (i+1)*w)
			return
		}
	}
}

func (m *Model) scrollStrip(direction int) bool {
	step := m.bar.Metrics().ScrollStep
	if step <= 0 {
		step = stripScrollStep
	}
	if !m.bar.Strip().ScrollBy(direction * step) {
		return false
	}
	aff := m.bar.Affordances()
	events.Tabs.Scroll(m.bar.Strip().Offset, aff.ShowLeft, aff.ShowRight)
	return true
}

// menuItems are the overflow tabs narrowed by the dropdown filter.
func (m *Model) menuItems() []tabs.Tab {
	return tabs.FilterTabs(m.bar.Layout().Overflow, m.menuQuery)
}

func (m *Model) toggleMenu() {
	m.menuQuery = ""
	state := m.bar.ToggleMenu()
	events.Tabs.Menu(state.String(), tabs.CloseTrigger.String())
}

func (m *Model) closeMenu(reason tabs.CloseReason) {
	if m.bar.Menu().Close(reason) {
		events.Tabs.Menu(tabs.MenuClosed.String(), reason.String())
	}
	m.menuQuery = ""
}

// selectTab activates id and runs whatever the screen needs on entry.
func (m *Model) selectTab(id string, fromMenu bool) tea.Cmd {
	wasOpen := m.bar.Menu().IsOpen()
	if !m.bar.Select(id) {
		return nil
	}
	if wasOpen {
		events.Tabs.Menu(tabs.MenuClosed.String(), m.bar.Menu().LastClose().String())
	}
	m.menuQuery = ""
	events.Tabs.Select(id, fromMenu)
	m.revealActiveTab()
	return m.enterTab(id)
}

// renderTabBar draws the strip, the scroll arrows and the trigger, and
// records their hit regions.
func (m *Model) renderTabBar() string {
	m.regions = m.regions[:0]
	layout := m.bar.Layout()
	strip := m.bar.Strip()
	view := m.bar.StripViewWidth()
	w := m.tabWidth()
	short := m.shortLabels()

	var full strings.Builder
	for i, t := range layout.Visible {
		label := centerText(truncateText(t.DisplayLabel(short), w-2), w)
		style := styles.Tab
		if t.ID == m.bar.Active() {
			style = styles.ActiveTab
		}
		full.WriteString(style.Render(label))
		start := i*w - strip.Offset
		end := start + w
		if end > 0 && start < view {
			m.regions = append(m.regions, region{kind: regionTab, id: t.ID, start: max(start, 0), end: min(end, view)})
		}
	}

	aff := m.bar.Affordances()
	left, right := strip.Offset, strip.Offset+view
	var prefix, suffix string
	if aff.ShowLeft && view > 1 {
		prefix = styles.ScrollArrow.Render("‹")
		left++
	}
	if aff.ShowRight && view > 1 {
		suffix = styles.ScrollArrow.Render("›")
		right--
	}
	visible := prefix + ansi.Cut(full.String(), left, right) + suffix
	if pad := view - ansi.StringWidth(visible); pad > 0 {
		visible += strings.Repeat(" ", pad)
	}
	// arrows sit on top of the tab regions
	if prefix != "" {
		m.regions = append([]region{{kind: regionScrollLeft, start: 0, end: 1}}, m.regions...)
	}
	if suffix != "" {
		m.regions = append([]region{{kind: regionScrollRight, start: view - 1, end: view}}, m.regions...)
	}

	if !layout.NeedsOverflow {
		return visible
	}
	trigger := styles.MoreTrigger
	if m.bar.MoreActive() || m.bar.Menu().IsOpen() {
		trigger = styles.MoreActive
	}
	more := centerText(moreLabel, moreCellWidth)
	m.regions = append(m.regions, region{kind: regionTrigger, start: view, end: view + moreCellWidth})
	return visible + trigger.Render(more)
}

// renderDropdown draws the open overflow menu right-aligned under the
// trigger, one row per entry, and records the row regions.
func (m *Model) renderDropdown() []styledLine {
	if !m.bar.Menu().IsOpen() {
		return nil
	}
	items := m.menuItems()
	width := dropdownMinWidth
	for _, t := range items {
		if lw := ansi.StringWidth(t.Label) + 4; lw > width {
			width = lw
		}
	}
	if m.width > 0 && width > m.width {
		width = m.width
	}
	indent := 0
	if m.width > width {
		indent = m.width - width
	}
	pad := strings.Repeat(" ", indent)
	lines := make([]styledLine, 0, len(items)+1)
	for i, t := range items {
		style := styles.MenuItem
		marker := "  "
		if t.ID == m.bar.Active() {
			style = styles.MenuActiveItem
			marker = "• "
		}
		if i == m.bar.Menu().Cursor() {
			style = styles.MenuSelected
		}
		row := padRight(truncateText(marker+t.Label, width), width)
		lines = append(lines, styledLine{text: pad + style.Render(row), raw: true})
		m.regions = append(m.regions, region{kind: regionMenuItem, id: t.ID, row: 1 + i, start: indent, end: indent + width})
	}
	if len(items) == 0 {
		lines = append(lines, styledLine{text: pad + styles.MenuItem.Render(padRight("  no matches", width)), raw: true})
	}
	if m.menuQuery != "" {
		lines = append(lines, styledLine{text: pad + styles.FilterPrompt.Render(padRight("/ "+m.menuQuery, width)), raw: true})
	}
	return lines
}

func (m *Model) regionAt(x, y int) (region, bool) {
	for _, r := range m.regions {
		if r.contains(x, y) {
			return r, true
		}
	}
	return region{}, false
}

func centerText(text string, width int) string {
	w := ansi.StringWidth(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

func padRight(text string, width int) string {
	if pad := width - ansi.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// TabIDs lists the tab ids in bar order.
func TabIDs() []string {
	ts := defaultTabs()
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}
