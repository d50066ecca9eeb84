package muse

import "testing"

func TestSuggestFirstLineNeedsNoContent(t *testing.T) {
	res := Suggest(FirstLine, false)
	if !res.Applicable() || len(res.Suggestions) != 3 {
		t.Fatalf("expected three opening lines, got %+v", res)
	}
}

func TestSuggestGatedActions(t *testing.T) {
	for _, a := range []Action{Tighten, Title, Expand, Mood} {
		empty := Suggest(a, false)
		if empty.Applicable() || empty.Prompt == "" || len(empty.Suggestions) != 0 {
			t.Fatalf("%s: expected a prompt without content, got %+v", a, empty)
		}
		full := Suggest(a, true)
		if !full.Applicable() || full.Prompt != "" {
			t.Fatalf("%s: expected suggestions with content, got %+v", a, full)
		}
	}
}

func TestSuggestReturnsCopies(t *testing.T) {
	res := Suggest(Title, true)
	res.Suggestions[0] = "changed"
	if Suggest(Title, true).Suggestions[0] != "Between Silences" {
		t.Fatalf("expected canned list to be unaffected")
	}
}

func TestSuggestUnknownAction(t *testing.T) {
	res := Suggest(Action("rhyme"), true)
	if res.Applicable() || res.Prompt != "" {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestActionsOrder(t *testing.T) {
	got := Actions()
	if len(got) != 5 || got[0].Action != FirstLine || got[4].Action != Mood {
		t.Fatalf("unexpected actions %+v", got)
	}
	if _, ok := Lookup(Expand); !ok {
		t.Fatalf("expected expand lookup")
	}
}

func TestFilter(t *testing.T) {
	items := Suggest(Mood, true).Suggestions
	if got := Filter(items, ""); len(got) != len(items) {
		t.Fatalf("expected unfiltered list, got %v", got)
	}
	got := Filter(items, "tndr")
	if len(got) != 1 || got[0] != "tender" {
		t.Fatalf("expected tender, got %v", got)
	}
	if got := Filter(items, "HOPE"); len(got) != 1 || got[0] != "quietly hopeful" {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}
