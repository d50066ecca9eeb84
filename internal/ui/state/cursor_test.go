package state

import "testing"

func newTestList(ids ...string) *List {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewList("test", items)
}

func TestMoveCursorHomeAndEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
	if l.MoveCursorHome() {
		t.Fatalf("expected no movement when already home")
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorClamps(t *testing.T) {
	l := newTestList("a", "b", "c")
	if l.MoveCursor(-1) {
		t.Fatalf("expected no movement above the first item")
	}
	if !l.MoveCursor(1) || l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	if !l.MoveCursor(5) || l.Cursor != 2 {
		t.Fatalf("expected cursor clamped to 2, got %d", l.Cursor)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 || l.ViewportOffset != 0 {
		t.Fatalf("expected cursor and offset normalized to 0, got %d/%d", l.Cursor, l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestWindowFollowsCursor(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 3
	rows, offset := l.Window(2)
	if offset != 2 || len(rows) != 2 || rows[0].ID != "c" || rows[1].ID != "d" {
		t.Fatalf("unexpected window %d %#v", offset, rows)
	}
	rows, offset = l.Window(0)
	if offset != 0 || len(rows) != 5 {
		t.Fatalf("expected full list without a limit, got %d %d", offset, len(rows))
	}
}

func TestSetItemsKeepsCursorOnSameID(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 1
	l.SetItems([]Item{{ID: "z"}, {ID: "a"}, {ID: "b"}})
	if cur, _ := l.Current(); cur.ID != "b" {
		t.Fatalf("expected cursor to follow b, got %q", cur.ID)
	}
	l.SetItems([]Item{{ID: "a"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", l.Cursor)
	}
	if !l.Select("a") || l.Select("missing") {
		t.Fatalf("unexpected Select results")
	}
}

func TestSelectionMarks(t *testing.T) {
	l := newTestList("theme:1", "theme:2", "theme:3")
	l.SetSelected([]string{"theme:3", "theme:9"})
	if !l.IsSelected("theme:3") || l.IsSelected("theme:9") {
		t.Fatalf("expected only existing rows marked, got %v", l.Selected)
	}
	l.SetItems([]Item{{ID: "theme:1"}, {ID: "theme:2"}})
	if l.IsSelected("theme:3") || len(l.Selected) != 0 {
		t.Fatalf("expected stale mark dropped")
	}
}
