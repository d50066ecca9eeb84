// Package tabs decides how a row of labelled tabs fits into the width a host
// has measured for it. Tabs that do not fit are moved behind a "more" trigger
// in priority order; the visible strip itself can still scroll horizontally.
//
// Everything here is pure arithmetic over the inputs. Hosts recompute the
// layout whenever the tab set or the measured width changes; stale widths
// correct themselves on the next measurement.
package tabs

import "sort"

// Design values, in pixels, used when the host does not supply its own.
const (
	EstimatedTabWidth = 120
	MoreButtonWidth   = 60
	MinVisibleTabs    = 3
	ScrollThreshold   = 10
	ScrollStep        = 200
)

// Tab is one selectable entry in the bar. IDs are unique within a bar.
// Priority defaults to zero; higher values stay visible longer.
type Tab struct {
	ID         string
	Label      string
	ShortLabel string
	Priority   int
}

// DisplayLabel returns the short label when asked for one and it exists.
func (t Tab) DisplayLabel(short bool) string {
	if short && t.ShortLabel != "" {
		return t.ShortLabel
	}
	return t.Label
}

// Mode is the rendering mode derived from a layout.
type Mode int

const (
	ModeCompact Mode = iota
	ModeOverflowing
)

func (m Mode) String() string {
	if m == ModeOverflowing {
		return "overflowing"
	}
	return "compact"
}

// LayoutResult partitions the input tabs into the directly clickable strip and
// the overflow list. Overflow is empty whenever NeedsOverflow is false.
type LayoutResult struct {
	Visible       []Tab
	Overflow      []Tab
	NeedsOverflow bool
}

// Mode reports which rendering mode the host should use.
func (r LayoutResult) Mode() Mode {
	if r.NeedsOverflow {
		return ModeOverflowing
	}
	return ModeCompact
}

// InOverflow reports whether the tab with id sits behind the more trigger.
func (r LayoutResult) InOverflow(id string) bool {
	for _, t := range r.Overflow {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Ordered returns visible tabs followed by overflow tabs, the order used for
// keyboard cycling.
func (r LayoutResult) Ordered() []Tab {
	out := make([]Tab, 0, len(r.Visible)+len(r.Overflow))
	out = append(out, r.Visible...)
	out = append(out, r.Overflow...)
	return out
}

// Metrics carries the size estimates a host measures in. A terminal host works
// in cells, a browser in pixels; the algorithm does not care.
type Metrics struct {
	TabWidth        int
	MoreWidth       int
	MinVisible      int
	ScrollThreshold int
	ScrollStep      int
}

// DefaultMetrics returns the pixel design values.
func DefaultMetrics() Metrics {
	return Metrics{
		TabWidth:        EstimatedTabWidth,
		MoreWidth:       MoreButtonWidth,
		MinVisible:      MinVisibleTabs,
		ScrollThreshold: ScrollThreshold,
		ScrollStep:      ScrollStep,
	}
}

// MaxVisible is floor((width - MoreWidth) / TabWidth). The result may be
// negative for very small widths.
func (m Metrics) MaxVisible(width int) int {
	if m.TabWidth <= 0 {
		return 0
	}
	return floorDiv(width-m.MoreWidth, m.TabWidth)
}

func (m Metrics) minVisible() int {
	if m.MinVisible <= 0 {
		return MinVisibleTabs
	}
	return m.MinVisible
}

// ComputeLayout partitions tabs for a container measured in pixels using the
// default design values.
func ComputeLayout(tabs []Tab, containerWidth int) LayoutResult {
	return ComputeLayoutWith(DefaultMetrics(), tabs, containerWidth)
}

// ComputeLayoutWith partitions tabs using host-provided metrics. Overflow only
// engages when fewer tabs fit than exist and at least MinVisible still fit;
// below that floor every tab stays in the strip and the strip scrolls.
func ComputeLayoutWith(m Metrics, tabs []Tab, containerWidth int) LayoutResult {
	maxVisible := m.MaxVisible(containerWidth)
	if len(tabs) > maxVisible && maxVisible >= m.minVisible() {
		sorted := ByPriority(tabs)
		return LayoutResult{
			Visible:       cloneTabs(sorted[:maxVisible]),
			Overflow:      cloneTabs(sorted[maxVisible:]),
			NeedsOverflow: true,
		}
	}
	return LayoutResult{Visible: cloneTabs(tabs)}
}

// ByPriority returns a copy of tabs sorted by priority, highest first. Equal
// priorities keep their input order.
func ByPriority(tabs []Tab) []Tab {
	sorted := cloneTabs(tabs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

func cloneTabs(tabs []Tab) []Tab {
	if tabs == nil {
		return nil
	}
	dup := make([]Tab, len(tabs))
	copy(dup, tabs)
	return dup
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
