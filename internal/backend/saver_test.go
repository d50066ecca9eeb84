package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/atomicstack/chapters/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRepo struct {
	mu        sync.Mutex
	saves     []store.Draft
	publishes []store.Draft

	started chan struct{}
	gate    chan struct{}
	pubErr  error
}

func (r *fakeRepo) SaveDraft(ctx context.Context, d store.Draft) (store.Draft, error) {
	if r.started != nil {
		select {
		case r.started <- struct{}{}:
		default:
		}
	}
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, d)
	d.UpdatedAt = time.Unix(int64(len(r.saves)), 0)
	return d, nil
}

func (r *fakeRepo) PublishDraft(ctx context.Context, d store.Draft) (store.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pubErr != nil {
		return store.Draft{}, r.pubErr
	}
	r.publishes = append(r.publishes, d)
	d.PublishedAt = time.Unix(1, 0)
	return d, nil
}

func (r *fakeRepo) savedTitles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.saves))
	for i, d := range r.saves {
		out[i] = d.Title
	}
	return out
}

func draft(id int64, title string) store.Draft {
	d := store.NewDraft()
	d.ID = id
	d.Title = title
	return d
}

func nextEvent(t *testing.T, s *Saver) Event {
	t.Helper()
	select {
	case evt, ok := <-s.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for saver event")
	}
	return Event{}
}

func shutdown(s *Saver) {
	s.Stop()
	s.Wait()
}

func TestSaverCoalescesPendingSnapshots(t *testing.T) {
	repo := &fakeRepo{started: make(chan struct{}, 1), gate: make(chan struct{})}
	s := NewSaver(context.Background(), repo, 10*time.Millisecond)
	defer shutdown(s)

	if !s.Submit(draft(1, "v1"), false) {
		t.Fatalf("expected submit to be accepted")
	}
	<-repo.started
	s.Submit(draft(1, "v2"), false)
	s.Submit(draft(1, "v3"), false)
	if s.Pending() != 1 {
		t.Fatalf("expected one pending draft, got %d", s.Pending())
	}
	close(repo.gate)

	first := nextEvent(t, s)
	second := nextEvent(t, s)
	if first.Draft.Title != "v1" || second.Draft.Title != "v3" {
		t.Fatalf("expected v1 then v3, got %q then %q", first.Draft.Title, second.Draft.Title)
	}
	if got := repo.savedTitles(); len(got) != 2 {
		t.Fatalf("expected two writes, got %v", got)
	}
	if second.Draft.UpdatedAt.IsZero() {
		t.Fatalf("expected event to carry the stored draft")
	}
}

func TestSaverManualSaveSkipsThrottle(t *testing.T) {
	repo := &fakeRepo{}
	s := NewSaver(context.Background(), repo, time.Hour)
	defer shutdown(s)

	s.Submit(draft(1, "auto"), false)
	if evt := nextEvent(t, s); evt.Manual || evt.Kind != KindSaved {
		t.Fatalf("unexpected first event %+v", evt)
	}
	s.Submit(draft(1, "manual"), true)
	evt := nextEvent(t, s)
	if !evt.Manual || evt.Draft.Title != "manual" || evt.Err != nil {
		t.Fatalf("unexpected manual event %+v", evt)
	}
}

func TestSaverStopFlushesPending(t *testing.T) {
	repo := &fakeRepo{}
	s := NewSaver(context.Background(), repo, time.Hour)

	s.Submit(draft(1, "first"), false)
	nextEvent(t, s)
	s.Submit(draft(1, "last"), false)
	shutdown(s)

	got := repo.savedTitles()
	if len(got) != 2 || got[1] != "last" {
		t.Fatalf("expected pending snapshot flushed on stop, got %v", got)
	}
	var last Event
	for evt := range s.Events() {
		last = evt
	}
	if last.Draft.Title != "last" {
		t.Fatalf("expected flush event, got %+v", last)
	}
	if s.Submit(draft(1, "late"), true) {
		t.Fatalf("expected submit after stop to be rejected")
	}
}

func TestSaverCancelledContextFlushesPending(t *testing.T) {
	repo := &fakeRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSaver(ctx, repo, time.Hour)

	s.Submit(draft(1, "a"), false)
	nextEvent(t, s)
	s.Submit(draft(1, "b"), false)
	cancel()
	s.Wait()

	got := repo.savedTitles()
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected throttled snapshot written after cancel, got %v", got)
	}
	if s.Submit(draft(1, "late"), true) {
		t.Fatalf("expected submit after cancel to be rejected")
	}
}

func TestSaverWritesIgnoreParentCancellation(t *testing.T) {
	repo := &ctxRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSaver(ctx, repo, time.Hour)

	s.Submit(draft(1, "a"), false)
	nextEvent(t, s)
	s.Submit(draft(1, "b"), false)
	cancel()
	s.Wait()

	if repo.cancelled != 0 || repo.writes != 2 {
		t.Fatalf("expected two writes on a live context, got %d writes, %d cancelled", repo.writes, repo.cancelled)
	}
}

// ctxRepo records whether writes arrive with a cancelled context.
type ctxRepo struct {
	mu        sync.Mutex
	writes    int
	cancelled int
}

func (r *ctxRepo) SaveDraft(ctx context.Context, d store.Draft) (store.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if ctx.Err() != nil {
		r.cancelled++
		return store.Draft{}, ctx.Err()
	}
	return d, nil
}

func (r *ctxRepo) PublishDraft(ctx context.Context, d store.Draft) (store.Draft, error) {
	return r.SaveDraft(ctx, d)
}

func TestSaverRejectsUnsavedDrafts(t *testing.T) {
	s := NewSaver(context.Background(), &fakeRepo{}, 0)
	defer shutdown(s)
	if s.Submit(store.NewDraft(), true) || s.Publish(store.NewDraft()) {
		t.Fatalf("expected drafts without an id to be rejected")
	}
}

func TestSaverPublish(t *testing.T) {
	repo := &fakeRepo{}
	s := NewSaver(context.Background(), repo, time.Hour)
	defer shutdown(s)

	s.Publish(draft(2, "done"))
	evt := nextEvent(t, s)
	if evt.Kind != KindPublished || evt.Err != nil || evt.Draft.PublishedAt.IsZero() {
		t.Fatalf("unexpected publish event %+v", evt)
	}

	repo.mu.Lock()
	repo.pubErr = errors.New("no open pages")
	repo.mu.Unlock()
	s.Publish(draft(2, "again"))
	evt = nextEvent(t, s)
	if evt.Err == nil || evt.Draft.Title != "again" {
		t.Fatalf("expected failed publish with snapshot, got %+v", evt)
	}
}

func TestSaverPublishWinsOverQueuedSave(t *testing.T) {
	repo := &fakeRepo{started: make(chan struct{}, 1), gate: make(chan struct{})}
	s := NewSaver(context.Background(), repo, time.Hour)
	defer shutdown(s)

	s.Submit(draft(1, "busy"), false)
	<-repo.started
	s.Publish(draft(3, "pub"))
	s.Submit(draft(3, "edit"), false)
	close(repo.gate)

	nextEvent(t, s)
	evt := nextEvent(t, s)
	if evt.Kind != KindPublished || evt.Draft.Title != "edit" {
		t.Fatalf("expected newest snapshot published, got %+v", evt)
	}
}

func TestThrottleWaitHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	if !th.wait(context.Background()) {
		t.Fatalf("expected first slot to be free")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to fail")
	}
	if !newThrottle(0).wait(context.Background()) {
		t.Fatalf("expected disabled throttle to pass")
	}
}
