package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatPadsColumns(t *testing.T) {
	got := Format([][]string{
		{"1", "Dawn", "saved"},
		{"12", "A longer title", "published"},
	}, []Alignment{AlignRight, AlignLeft})
	want := []string{
		" 1  Dawn            saved    ",
		"12  A longer title  published",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
}

func TestFormatMeasuresDisplayWidth(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil)
	if got[1] != "ab    y" {
		t.Fatalf("expected wide runes to count double, got %q", got[1])
	}
}

func TestRenderAddsHeaderAndClips(t *testing.T) {
	got := Render([]Column{
		{Header: "ID", Align: AlignRight},
		{Header: "TITLE", Max: 8},
		{Header: "BLOCKS", Align: AlignRight},
	}, [][]string{
		{"3", "Letters to nobody", "4"},
		{"10", "Rain"},
	})
	want := []string{
		"ID  TITLE     BLOCKS",
		" 3  Letters…       4",
		"10  Rain",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
}

func TestRenderWithoutColumns(t *testing.T) {
	if got := Render(nil, [][]string{{"x"}}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
