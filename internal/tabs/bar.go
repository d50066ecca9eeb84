package tabs

// Bar is the host-side state of a tab bar: the tab definitions, the active
// tab, the latest layout and the dropdown. It is owned by a single screen and
// mutated only from its event loop.
type Bar struct {
	metrics Metrics
	tabs    []Tab
	active  string
	width   int
	layout  LayoutResult
	menu    Menu
	strip   Strip
}

// NewBar creates a bar with the first tab active. The layout starts in the
// unmeasured state until SetWidth is called.
func NewBar(metrics Metrics, tabs []Tab) *Bar {
	b := &Bar{metrics: metrics}
	b.SetTabs(tabs)
	return b
}

// Metrics returns the metrics the bar lays out with.
func (b *Bar) Metrics() Metrics {
	return b.metrics
}

// Tabs returns the tab definitions in input order.
func (b *Bar) Tabs() []Tab {
	return cloneTabs(b.tabs)
}

// SetTabs replaces the tab definitions. The active tab is kept when it still
// exists, otherwise the first tab becomes active.
func (b *Bar) SetTabs(tabs []Tab) {
	b.tabs = cloneTabs(tabs)
	if b.indexOf(b.active) < 0 {
		b.active = ""
		if len(b.tabs) > 0 {
			b.active = b.tabs[0].ID
		}
	}
	b.recompute()
}

// Width returns the last measured container width.
func (b *Bar) Width() int {
	return b.width
}

// SetWidth records a new measurement and reports whether the layout changed.
func (b *Bar) SetWidth(width int) bool {
	if width < 0 {
		width = 0
	}
	before := b.layout
	b.width = width
	b.recompute()
	return !sameLayout(before, b.layout)
}

// Layout returns the current partition.
func (b *Bar) Layout() LayoutResult {
	return b.layout
}

// Active returns the active tab id.
func (b *Bar) Active() string {
	return b.active
}

// ActiveTab returns the active tab definition.
func (b *Bar) ActiveTab() (Tab, bool) {
	idx := b.indexOf(b.active)
	if idx < 0 {
		return Tab{}, false
	}
	return b.tabs[idx], true
}

// Select makes id active and closes the dropdown. Unknown ids are ignored.
// Entries picked inside the dropdown go through SelectFromMenu instead.
func (b *Bar) Select(id string) bool {
	if b.indexOf(id) < 0 {
		return false
	}
	b.menu.Close(CloseTabSelected)
	b.active = id
	return true
}

// Cycle activates the next (delta > 0) or previous tab in display order.
func (b *Bar) Cycle(delta int) string {
	ordered := b.layout.Ordered()
	if len(ordered) == 0 {
		return b.active
	}
	idx := 0
	for i, t := range ordered {
		if t.ID == b.active {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(ordered) + len(ordered)) % len(ordered)
	b.Select(ordered[idx].ID)
	return b.active
}

// MoreActive reports whether the active tab is hidden behind the trigger, in
// which case the trigger itself is drawn as active.
func (b *Bar) MoreActive() bool {
	return b.layout.InOverflow(b.active)
}

// Menu exposes the dropdown state machine.
func (b *Bar) Menu() *Menu {
	return &b.menu
}

// ToggleMenu handles a trigger activation. The dropdown only opens while the
// bar is overflowing.
func (b *Bar) ToggleMenu() MenuState {
	if !b.layout.NeedsOverflow {
		b.menu.Close(CloseOutside)
		return b.menu.State()
	}
	state := b.menu.Toggle()
	if state == MenuOpen {
		for i, t := range b.layout.Overflow {
			if t.ID == b.active {
				b.menu.SetCursor(i, len(b.layout.Overflow))
				break
			}
		}
	}
	return state
}

// SelectFromMenu activates the highlighted overflow tab.
func (b *Bar) SelectFromMenu() (Tab, bool) {
	tab, ok := b.menu.Select(b.layout.Overflow)
	if !ok {
		return Tab{}, false
	}
	b.active = tab.ID
	return tab, true
}

// Strip exposes the scroll state of the visible strip.
func (b *Bar) Strip() *Strip {
	return &b.strip
}

// Affordances evaluates the scroll arrows with the bar's threshold.
func (b *Bar) Affordances() Affordances {
	return b.strip.Affordances(b.metrics.ScrollThreshold)
}

// StripViewWidth is the width available to the visible strip: the whole bar
// in compact mode, the bar minus the trigger otherwise.
func (b *Bar) StripViewWidth() int {
	w := b.width
	if b.layout.NeedsOverflow {
		w -= b.metrics.MoreWidth
	}
	if w < 0 {
		return 0
	}
	return w
}

func (b *Bar) recompute() {
	b.layout = ComputeLayoutWith(b.metrics, b.tabs, b.width)
	if !b.layout.NeedsOverflow {
		b.menu.Close(CloseOutside)
	}
}

func (b *Bar) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range b.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func sameLayout(a, b LayoutResult) bool {
	if a.NeedsOverflow != b.NeedsOverflow || len(a.Visible) != len(b.Visible) || len(a.Overflow) != len(b.Overflow) {
		return false
	}
	for i := range a.Visible {
		if a.Visible[i].ID != b.Visible[i].ID {
			return false
		}
	}
	for i := range a.Overflow {
		if a.Overflow[i].ID != b.Overflow[i].ID {
			return false
		}
	}
	return true
}
