package state

import "time"

// DraftStatus summarises the persistence state of the open draft.
type DraftStatus struct {
	DraftID     int64
	Dirty       bool
	Saving      bool
	SavedAt     time.Time
	PublishedAt time.Time
	Err         error
}

// Published reports whether the open draft has been published.
func (s DraftStatus) Published() bool {
	return !s.PublishedAt.IsZero()
}

// DraftStatusStore tracks whether the open draft has unsaved edits and the
// outcome of its last write.
type DraftStatusStore interface {
	Status() DraftStatus
	Reset(id int64, savedAt, publishedAt time.Time)
	MarkDirty()
	MarkSaving()
	MarkSaved(id int64, at time.Time, stillDirty bool)
	MarkPublished(id int64, at time.Time)
	MarkFailed(id int64, err error)
}

type draftStatusStore struct {
	status DraftStatus
}

func NewDraftStatusStore() DraftStatusStore {
	return &draftStatusStore{}
}

func (s *draftStatusStore) Status() DraftStatus {
	return s.status
}

func (s *draftStatusStore) Reset(id int64, savedAt, publishedAt time.Time) {
	s.status = DraftStatus{DraftID: id, SavedAt: savedAt, PublishedAt: publishedAt}
}

func (s *draftStatusStore) MarkDirty() {
	s.status.Dirty = true
}

func (s *draftStatusStore) MarkSaving() {
	s.status.Saving = true
}

// MarkSaved records a completed write. Results for another draft are
// ignored; stillDirty keeps the flag when edits arrived after the snapshot.
func (s *draftStatusStore) MarkSaved(id int64, at time.Time, stillDirty bool) {
	if id != s.status.DraftID {
		return
	}
	s.status.Saving = false
	s.status.Dirty = stillDirty
	s.status.SavedAt = at
	s.status.Err = nil
}

func (s *draftStatusStore) MarkPublished(id int64, at time.Time) {
	if id != s.status.DraftID {
		return
	}
	s.status.Saving = false
	s.status.PublishedAt = at
	s.status.Err = nil
}

func (s *draftStatusStore) MarkFailed(id int64, err error) {
	if id != s.status.DraftID {
		return
	}
	s.status.Saving = false
	s.status.Err = err
}
