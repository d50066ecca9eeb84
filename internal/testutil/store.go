package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/store"
)

// OpenStore opens a migrated draft store in a temporary directory and closes
// it when the test ends.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// SeedDraft stores a draft with the given title and one text block per
// paragraph.
func SeedDraft(t *testing.T, st *store.Store, title string, paragraphs ...string) store.Draft {
	t.Helper()
	d := store.NewDraft()
	d.Title = title
	for i, p := range paragraphs {
		if i > 0 {
			d.Blocks, _, _ = d.Blocks.AddBlock(composer.KindText)
		}
		b, _ := d.Blocks.At(i)
		d.Blocks = d.Blocks.UpdateBlockContent(b.ID, composer.Text{Text: p})
	}
	saved, err := st.CreateDraft(context.Background(), d)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	return saved
}
