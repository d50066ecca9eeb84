package store

import (
	"context"
	"fmt"
)

// Theme is one entry of the theme catalogue a draft can be tagged with.
type Theme struct {
	ID          int
	Name        string
	Slug        string
	Description string
}

// ListThemes returns the catalogue ordered by name.
func (s *Store) ListThemes(ctx context.Context) ([]Theme, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug, description FROM themes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var out []Theme
	for rows.Next() {
		var t Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
