package state

// Item is one row of a list screen.
type Item struct {
	ID     string
	Label  string
	Detail string
	// Group tags rows that share a list but act differently, such as the
	// title, mood and theme rows of the details screen.
	Group string
}

// List holds the cursor, filter, viewport and selection of a list screen.
type List struct {
	ID             string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	MultiSelect    bool
	Selected       map[string]struct{}
	ViewportOffset int
}

// NewList constructs a List with the cursor on the first item.
func NewList(id string, items []Item) *List {
	l := &List{
		ID:         id,
		LastCursor: -1,
		Selected:   make(map[string]struct{}),
	}
	l.SetItems(items)
	return l
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// IndexOf returns the visible index of id, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// SetItems replaces the rows, keeping the cursor on the same item id when
// it survives and dropping selections that no longer exist.
func (l *List) SetItems(items []Item) {
	prev, hadPrev := l.Current()
	l.Full = CloneItems(items)
	l.dropStaleSelections()
	l.applyFilter()
	if hadPrev {
		if idx := l.IndexOf(prev.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if l.ViewportOffset < 0 || l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// Select moves the cursor to id. It reports whether id is visible.
func (l *List) Select(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}
