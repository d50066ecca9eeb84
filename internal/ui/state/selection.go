package state

// Selection marks rows as checked. Lists with MultiSelect render the marks
// as checkboxes; the owner decides what a mark means and resets it through
// SetSelected.

// dropStaleSelections forgets marks whose rows are gone.
func (l *List) dropStaleSelections() {
	if len(l.Selected) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		valid[item.ID] = struct{}{}
	}
	for id := range l.Selected {
		if _, ok := valid[id]; !ok {
			delete(l.Selected, id)
		}
	}
}

func (l *List) IsSelected(id string) bool {
	_, ok := l.Selected[id]
	return ok
}

// SetSelected replaces the marks. Ids without a row are ignored.
func (l *List) SetSelected(ids []string) {
	l.Selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		l.Selected[id] = struct{}{}
	}
	l.dropStaleSelections()
}

