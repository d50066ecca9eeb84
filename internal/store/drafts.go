package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/chapters/internal/composer"
)

// Draft is an editable chapter. ID zero means the draft has not been stored.
type Draft struct {
	ID          int64
	Title       string
	Blocks      composer.Collection
	Themes      composer.ThemeSet
	Mood        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt time.Time
}

// NewDraft returns an unsaved draft seeded with one empty text block.
func NewDraft() Draft {
	return Draft{Blocks: composer.Seed()}
}

// Payload snapshots the draft for save and publish.
func (d Draft) Payload() composer.PublishPayload {
	return composer.ToPayload(d.Title, d.Blocks, d.Themes, d.Mood)
}

// Published reports whether the draft has been published at least once.
func (d Draft) Published() bool {
	return !d.PublishedAt.IsZero()
}

// DisplayTitle falls back to a placeholder for untitled drafts.
func (d Draft) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return "Untitled"
}

// Summary is one row of the draft listing.
type Summary struct {
	ID          int64
	Title       string
	Blocks      int
	Mood        string
	UpdatedAt   time.Time
	PublishedAt time.Time
}

// CreateDraft stores d as a new draft and returns it with its id and
// timestamps filled in.
func (s *Store) CreateDraft(ctx context.Context, d Draft) (Draft, error) {
	now := s.stamp()
	themes, err := json.Marshal(d.Themes.IDs())
	if err != nil {
		return Draft{}, err
	}
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO drafts (title, mood, themes, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			d.Title, d.Mood, string(themes), now.UnixMilli(), now.UnixMilli())
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		d.ID = id
		return writeBlocks(ctx, tx, id, d.Blocks)
	})
	if err != nil {
		return Draft{}, fmt.Errorf("create draft: %w", err)
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	return d, nil
}

// SaveDraft overwrites the stored draft with d. It returns ErrNotFound when
// the draft does not exist.
func (s *Store) SaveDraft(ctx context.Context, d Draft) (Draft, error) {
	if d.ID == 0 {
		return Draft{}, fmt.Errorf("save draft: %w", ErrNotFound)
	}
	now := s.stamp()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return updateDraft(ctx, tx, d, now)
	})
	if err != nil {
		return Draft{}, fmt.Errorf("save draft %d: %w", d.ID, err)
	}
	d.UpdatedAt = now
	return d, nil
}

// updateDraft rewrites the draft row and replaces its blocks.
func updateDraft(ctx context.Context, tx *sql.Tx, d Draft, now time.Time) error {
	themes, err := json.Marshal(d.Themes.IDs())
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE drafts SET title = ?, mood = ?, themes = ?, updated_at = ? WHERE id = ?`,
		d.Title, d.Mood, string(themes), now.UnixMilli(), d.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM draft_blocks WHERE draft_id = ?`, d.ID); err != nil {
		return err
	}
	return writeBlocks(ctx, tx, d.ID, d.Blocks)
}

func writeBlocks(ctx context.Context, tx *sql.Tx, draftID int64, blocks composer.Collection) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO draft_blocks (draft_id, block_id, position, block_type, content) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, b := range blocks.Blocks() {
		content, err := json.Marshal(b.Content)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, draftID, b.ID, i, string(b.Kind()), string(content)); err != nil {
			return err
		}
	}
	return nil
}

// GetDraft loads a draft with its blocks in stored order.
func (s *Store) GetDraft(ctx context.Context, id int64) (Draft, error) {
	var (
		d         Draft
		themes    string
		created   int64
		updated   int64
		published sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, mood, themes, created_at, updated_at, published_at FROM drafts WHERE id = ?`, id).
		Scan(&d.ID, &d.Title, &d.Mood, &themes, &created, &updated, &published)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, fmt.Errorf("get draft %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Draft{}, fmt.Errorf("get draft %d: %w", id, err)
	}
	var ids []int
	if err := json.Unmarshal([]byte(themes), &ids); err != nil {
		return Draft{}, fmt.Errorf("decode themes of draft %d: %w", id, err)
	}
	d.Themes = composer.NewThemeSet(ids...)
	d.CreatedAt = fromMillis(created)
	d.UpdatedAt = fromMillis(updated)
	if published.Valid {
		d.PublishedAt = fromMillis(published.Int64)
	}

	blocks, err := s.loadBlocks(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	d.Blocks = composer.NewCollection(blocks)
	return d, nil
}

func (s *Store) loadBlocks(ctx context.Context, draftID int64) ([]composer.Block, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT block_id, block_type, content FROM draft_blocks WHERE draft_id = ? ORDER BY position, rowid`, draftID)
	if err != nil {
		return nil, fmt.Errorf("load blocks of draft %d: %w", draftID, err)
	}
	defer rows.Close()

	var out []composer.Block
	for rows.Next() {
		var id, kind, raw string
		if err := rows.Scan(&id, &kind, &raw); err != nil {
			return nil, err
		}
		k, err := composer.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("block %s of draft %d: %w", id, draftID, err)
		}
		content, err := composer.DecodeContent(k, json.RawMessage(raw))
		if err != nil {
			return nil, fmt.Errorf("block %s of draft %d: %w", id, draftID, err)
		}
		out = append(out, composer.Block{ID: id, Content: content})
	}
	return out, rows.Err()
}

// ListDrafts returns every draft, most recently edited first.
func (s *Store) ListDrafts(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.title, d.mood, d.updated_at, d.published_at,
		       (SELECT COUNT(*) FROM draft_blocks b WHERE b.draft_id = d.id)
		FROM drafts d
		ORDER BY d.updated_at DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			updated   int64
			published sql.NullInt64
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Mood, &updated, &published, &sum.Blocks); err != nil {
			return nil, err
		}
		sum.UpdatedAt = fromMillis(updated)
		if published.Valid {
			sum.PublishedAt = fromMillis(published.Int64)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteDraft removes a draft and its blocks.
func (s *Store) DeleteDraft(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete draft %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete draft %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete draft %d: %w", id, ErrNotFound)
	}
	return nil
}

// PublishDraft saves d, records its payload as a publication and marks the
// draft published, all in one transaction. Drafts failing the publish guard
// are rejected.
func (s *Store) PublishDraft(ctx context.Context, d Draft) (Draft, error) {
	if !composer.CanPublish(d.Title, d.Blocks) {
		return Draft{}, ErrNotPublishable
	}
	if d.ID == 0 {
		return Draft{}, fmt.Errorf("publish draft: %w", ErrNotFound)
	}
	p := d.Payload()
	if err := p.Validate(); err != nil {
		return Draft{}, fmt.Errorf("publish draft %d: %w", d.ID, err)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return Draft{}, err
	}
	now := s.stamp()
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := updateDraft(ctx, tx, d, now); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO publications (draft_id, payload, published_at) VALUES (?, ?, ?)`,
			d.ID, string(payload), now.UnixMilli()); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE drafts SET published_at = ? WHERE id = ?`, now.UnixMilli(), d.ID)
		return err
	})
	if err != nil {
		return Draft{}, fmt.Errorf("publish draft %d: %w", d.ID, err)
	}
	d.UpdatedAt = now
	d.PublishedAt = now
	return d, nil
}

// Publications returns the stored payloads for a draft, oldest first.
func (s *Store) Publications(ctx context.Context, draftID int64) ([]composer.PublishPayload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM publications WHERE draft_id = ? ORDER BY published_at, id`, draftID)
	if err != nil {
		return nil, fmt.Errorf("list publications of draft %d: %w", draftID, err)
	}
	defer rows.Close()

	var out []composer.PublishPayload
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p composer.PublishPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode publication of draft %d: %w", draftID, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("publication of draft %d: %w", draftID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
