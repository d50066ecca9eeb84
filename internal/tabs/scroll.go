package tabs

// Affordances says which scroll arrows should be drawn for the strip.
type Affordances struct {
	ShowLeft  bool
	ShowRight bool
}

// UpdateScrollAffordances applies the default 10px threshold, which keeps the
// arrows from flickering when the strip rests at either end.
func UpdateScrollAffordances(scrollLeft, scrollWidth, clientWidth int) Affordances {
	return scrollAffordances(ScrollThreshold, scrollLeft, scrollWidth, clientWidth)
}

// ScrollAffordances is UpdateScrollAffordances with the metric's threshold.
func (m Metrics) ScrollAffordances(scrollLeft, scrollWidth, clientWidth int) Affordances {
	return scrollAffordances(m.ScrollThreshold, scrollLeft, scrollWidth, clientWidth)
}

func scrollAffordances(threshold, scrollLeft, scrollWidth, clientWidth int) Affordances {
	return Affordances{
		ShowLeft:  scrollLeft > threshold,
		ShowRight: scrollLeft < scrollWidth-clientWidth-threshold,
	}
}

// Strip tracks the horizontal scroll position of the visible tab strip.
// ContentWidth is the full width of the rendered tabs, ViewWidth the part the
// host can show.
type Strip struct {
	Offset       int
	ContentWidth int
	ViewWidth    int
}

// MaxOffset is the largest offset that still fills the view.
func (s Strip) MaxOffset() int {
	if s.ContentWidth <= s.ViewWidth {
		return 0
	}
	return s.ContentWidth - s.ViewWidth
}

// Overflows reports whether the strip is wider than its view.
func (s Strip) Overflows() bool {
	return s.ContentWidth > s.ViewWidth
}

// Resize updates the measured widths and clamps the offset.
func (s *Strip) Resize(contentWidth, viewWidth int) {
	if viewWidth < 0 {
		viewWidth = 0
	}
	s.ContentWidth = contentWidth
	s.ViewWidth = viewWidth
	s.clamp()
}

// ScrollBy moves the strip by delta and reports whether the offset changed.
func (s *Strip) ScrollBy(delta int) bool {
	old := s.Offset
	s.Offset += delta
	s.clamp()
	return s.Offset != old
}

// Reveal scrolls the minimum amount needed to bring [start, end) into view.
func (s *Strip) Reveal(start, end int) bool {
	old := s.Offset
	if start < s.Offset {
		s.Offset = start
	} else if end > s.Offset+s.ViewWidth {
		s.Offset = end - s.ViewWidth
	}
	s.clamp()
	return s.Offset != old
}

// Affordances evaluates the arrows for the current offset.
func (s Strip) Affordances(threshold int) Affordances {
	return scrollAffordances(threshold, s.Offset, s.ContentWidth, s.ViewWidth)
}

func (s *Strip) clamp() {
	if s.Offset > s.MaxOffset() {
		s.Offset = s.MaxOffset()
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}
