package preview

import (
	"strings"
	"testing"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/store"
)

func sampleDraft() store.Draft {
	d := store.NewDraft()
	d.Title = "Between Silences"
	d.Mood = "tender"
	d.Themes = composer.NewThemeSet(3, 99)
	d.Blocks = composer.NewCollection([]composer.Block{
		{ID: "a", Content: composer.Text{Text: "The morning arrived."}},
		{ID: "b", Content: composer.Text{}},
		{ID: "c", Content: composer.Quote{Text: "Silence has weight\nand shape", Source: "you"}},
		{ID: "d", Content: composer.Image{URL: "https://example.com/a.jpg", Caption: "dawn"}},
		{ID: "e", Content: composer.Audio{URL: "https://example.com/a.mp3"}},
		{ID: "f", Content: composer.Video{URL: "https://example.com/v.mp4", Caption: "rain"}},
	})
	return d
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleDraft(), map[int]string{3: "Belonging"})
	want := strings.Join([]string{
		"# Between Silences",
		"",
		"*Mood:* tender | *Themes:* Belonging, #99",
		"",
		"The morning arrived.",
		"",
		"> Silence has weight",
		"> and shape",
		">",
		"> *you*",
		"",
		"![dawn](https://example.com/a.jpg)",
		"",
		"*dawn*",
		"",
		"Audio: [https://example.com/a.mp3](https://example.com/a.mp3)",
		"",
		"Video: [rain](https://example.com/v.mp4)",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestMarkdownEmptyDraft(t *testing.T) {
	got := Markdown(store.NewDraft(), nil)
	want := "# Untitled\n\n_Nothing written yet._\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRendererCachesByWidthAndContent(t *testing.T) {
	r, err := NewRenderer("notty", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	md := Markdown(sampleDraft(), nil)
	out, err := r.Render(md, 60)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Between Silences") || !strings.Contains(out, "The morning arrived.") {
		t.Fatalf("expected rendered text, got %q", out)
	}
	again, err := r.Render(md, 60)
	if err != nil || again != out {
		t.Fatalf("expected cached output to match")
	}
	if r.Cached() != 1 {
		t.Fatalf("expected one cached entry, got %d", r.Cached())
	}
	if _, err := r.Render(md, 5); err != nil {
		t.Fatalf("render narrow: %v", err)
	}
	if r.Cached() != 2 {
		t.Fatalf("expected narrow width cached separately, got %d", r.Cached())
	}
}
