package state

import (
	"reflect"
	"testing"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	list := newTestList("one", "two", "three")
	list.Cursor = 2
	list.SetFilter("two", len("two"))

	if list.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", list.Filter)
	}
	if list.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", list.FilterCursor)
	}
	if list.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", list.Cursor)
	}
	if len(list.Items) != 1 || list.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", list.Items)
	}

	if !list.ClearFilter() {
		t.Fatalf("expected clear to report a change")
	}
	if list.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", list.Cursor)
	}
	if list.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", list.LastCursor)
	}
	if list.ClearFilter() {
		t.Fatalf("expected second clear to be a no-op")
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	list := newTestList("alpha")

	if !list.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if list.Filter != "ab" || list.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", list.Filter, list.FilterCursor)
	}

	list.FilterCursor = 1
	if !list.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if list.Filter != "azb" || list.FilterCursor != 2 {
		t.Fatalf("expected insert into middle, got %q/%d", list.Filter, list.FilterCursor)
	}

	if !list.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if list.Filter != "ab" || list.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", list.Filter, list.FilterCursor)
	}

	list.SetFilter("abc def", len("abc def"))
	if !list.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if list.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", list.Filter)
	}

	list.SetFilter("abc", 0)
	if list.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if list.InsertFilterText("") {
		t.Fatal("expected empty insert to fail")
	}
}

func TestMoveFilterCursorClamps(t *testing.T) {
	list := newTestList("one")
	list.SetFilter("héllo", 2)
	if !list.MoveFilterCursor(-1) || list.FilterCursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", list.FilterCursor)
	}
	if !list.MoveFilterCursor(99) || list.FilterCursor != 5 {
		t.Fatalf("expected cursor clamped to rune length 5, got %d", list.FilterCursor)
	}
	if list.MoveFilterCursor(1) {
		t.Fatal("expected no movement past the end")
	}
}

func TestFilterItemsMatchesLabelAndDetail(t *testing.T) {
	items := []Item{
		{ID: "1", Label: "Alpha"},
		{ID: "2", Label: "Beta"},
		{ID: "3", Label: "Gamma", Detail: "holiday notes"},
	}
	filtered := FilterItems(items, "alp")
	if len(filtered) != 1 || filtered[0].Label != "Alpha" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	filtered = FilterItems(items, "ta")
	if len(filtered) != 1 || filtered[0].Label != "Beta" {
		t.Fatalf("expected fuzzy match for Beta, got %#v", filtered)
	}
	filtered = FilterItems(items, "holi")
	if len(filtered) != 1 || filtered[0].ID != "3" {
		t.Fatalf("expected detail match, got %#v", filtered)
	}

	clone := FilterItems(items, "  ")
	clone[0].Label = "changed"
	if items[0].Label != "Alpha" {
		t.Fatal("expected original slice to remain unchanged")
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}

	if idx := BestMatchIndex(items, "second"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetFilterSelectsFuzzyMatch(t *testing.T) {
	list := NewList("id", []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}})
	list.SetFilter("alp", 3)
	if list.Cursor != 0 {
		t.Fatalf("expected fuzzy match to select first item, got %d", list.Cursor)
	}
	if !reflect.DeepEqual(list.Items, []Item{{ID: "1", Label: "Alpha"}}) {
		t.Fatalf("expected filtered items to contain Alpha, got %#v", list.Items)
	}
}
