package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/composer"
)

func TestAddBlockOpensEditorAndSaves(t *testing.T) {
	repo := newMemRepo()
	h := newTestHarness(t, repo, Options{Width: 100, Height: 30})
	h.Send(keyRunes("2"))
	m := h.Model()
	if m.Mode() != ModeBlockEditor {
		t.Fatalf("expected editor to open, got mode %d", m.Mode())
	}
	if m.Draft().Blocks.Len() != 2 {
		t.Fatalf("expected two blocks, got %d", m.Draft().Blocks.Len())
	}
	typeText(h, "Stay a while")
	h.Send(keyType(tea.KeyTab))
	typeText(h, "Gran")
	h.Send(keyType(tea.KeyEnter))

	if m.Mode() != ModeBrowse {
		t.Fatalf("expected editor closed")
	}
	b, _ := m.Draft().Blocks.At(1)
	want := composer.Quote{Text: "Stay a while", Source: "Gran"}
	if b.Content != want {
		t.Fatalf("expected %+v, got %+v", want, b.Content)
	}
	stored := repo.stored(m.Draft().ID)
	if got, _ := stored.Blocks.At(1); got.Content != want {
		t.Fatalf("expected stored quote, got %+v", got.Content)
	}
	if item, _ := m.blocks.Current(); item.ID != b.ID {
		t.Fatalf("expected cursor on edited block")
	}
}

func TestEditorCancelKeepsContent(t *testing.T) {
	repo := newMemRepo()
	h := newTestHarness(t, repo, Options{Width: 100, Height: 30})
	saves := repo.saves
	h.Send(keyRunes("e"))
	typeText(h, "draft words")
	h.Send(keyType(tea.KeyEsc))
	m := h.Model()
	if m.Mode() != ModeBrowse {
		t.Fatalf("expected editor closed")
	}
	if m.Draft().Blocks.HasContent() {
		t.Fatalf("expected cancelled edit to be discarded")
	}
	if repo.saves != saves {
		t.Fatalf("expected no save on cancel")
	}
}

func TestEditorRejectsBadLink(t *testing.T) {
	h := newTestHarness(t, newMemRepo(), Options{Width: 100, Height: 30})
	h.Send(keyRunes("3"))
	typeText(h, "ftp://x")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlD})
	m := h.Model()
	if m.Mode() != ModeBlockEditor || m.editor.err == "" {
		t.Fatalf("expected editor to stay open with an error")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	for range "ftp://x" {
		h.Send(keyType(tea.KeyBackspace))
	}
	typeText(h, "https://img.example/a.png")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.Mode() != ModeBrowse {
		t.Fatalf("expected editor closed")
	}
	b, _ := m.Draft().Blocks.At(1)
	if got := b.Content.(composer.Image).URL; got != "https://img.example/a.png" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestMediaCapRefusesThirdMediaBlock(t *testing.T) {
	h := newTestHarness(t, newMemRepo(), Options{Width: 100, Height: 30})
	for _, k := range []string{"3", "4"} {
		h.Send(keyRunes(k))
		h.Send(keyType(tea.KeyEsc))
	}
	h.Send(keyRunes("5"))
	m := h.Model()
	if m.Mode() != ModeBrowse {
		t.Fatalf("expected no editor for refused block")
	}
	if got := m.Draft().Blocks.Len(); got != 3 {
		t.Fatalf("expected three blocks, got %d", got)
	}
	if got := latestToast(t, m); got != "Only 2 media blocks per chapter" {
		t.Fatalf("unexpected toast %q", got)
	}
	h.Send(keyRunes("1"))
	if m.Mode() != ModeBlockEditor {
		t.Fatalf("expected text block still allowed")
	}
}

func TestBlockLimit(t *testing.T) {
	h := newTestHarness(t, newMemRepo(), Options{Width: 100, Height: 30})
	for i := 1; i < composer.MaxBlocks; i++ {
		h.Send(keyRunes("1"))
		h.Send(keyType(tea.KeyEsc))
	}
	m := h.Model()
	if got := m.Draft().Blocks.Len(); got != composer.MaxBlocks {
		t.Fatalf("expected %d blocks, got %d", composer.MaxBlocks, got)
	}
	h.Send(keyRunes("1"))
	if got := latestToast(t, m); got != "A chapter holds at most 12 blocks" {
		t.Fatalf("unexpected toast %q", got)
	}
}

func TestDeleteKeepsLastBlock(t *testing.T) {
	h := newTestHarness(t, newMemRepo(), Options{Width: 100, Height: 30})
	h.Send(keyRunes("x"))
	m := h.Model()
	if m.Draft().Blocks.Len() != 1 {
		t.Fatalf("expected last block kept")
	}
	if got := latestToast(t, m); got != "A chapter keeps at least one block" {
		t.Fatalf("unexpected toast %q", got)
	}

	h.Send(keyRunes("2"))
	h.Send(keyType(tea.KeyEsc))
	h.Send(keyRunes("x"))
	if m.Draft().Blocks.Len() != 1 {
		t.Fatalf("expected quote deleted, got %d blocks", m.Draft().Blocks.Len())
	}
	if b, _ := m.Draft().Blocks.At(0); b.Kind() != composer.KindText {
		t.Fatalf("expected text block to remain, got %s", b.Kind())
	}
}

func TestMoveBlockKeepsCursorOnBlock(t *testing.T) {
	h := newTestHarness(t, newMemRepo(), Options{Width: 100, Height: 30})
	h.Send(keyRunes("2"))
	h.Send(keyType(tea.KeyEsc))
	m := h.Model()
	quote, _ := m.Draft().Blocks.At(1)

	h.Send(keyRunes("K"))
	if got := m.Draft().Blocks.Index(quote.ID); got != 0 {
		t.Fatalf("expected quote moved to top, got %d", got)
	}
	if item, _ := m.blocks.Current(); item.ID != quote.ID {
		t.Fatalf("expected cursor to follow the block")
	}
	h.Send(keyRunes("K"))
	if got := m.Draft().Blocks.Index(quote.ID); got != 0 {
		t.Fatalf("expected move past the top to be ignored")
	}
	h.Send(keyRunes("J"))
	if got := m.Draft().Blocks.Index(quote.ID); got != 1 {
		t.Fatalf("expected quote back at 1, got %d", got)
	}
}

func TestBlockSummary(t *testing.T) {
	cases := []struct {
		content composer.Content
		want    string
	}{
		{composer.Text{}, ""},
		{composer.Text{Text: "one\ntwo"}, "one …"},
		{composer.Quote{Text: "be kind", Source: "Ma"}, "be kind (Ma)"},
		{composer.Image{URL: "https://x/a.png", Caption: "dawn"}, "https://x/a.png · dawn"},
		{composer.Audio{URL: "https://x/a.mp3", Title: "rain"}, "rain · https://x/a.mp3"},
	}
	for _, tc := range cases {
		if got := blockSummary(tc.content); got != tc.want {
			t.Fatalf("blockSummary(%+v): expected %q, got %q", tc.content, tc.want, got)
		}
	}
}
