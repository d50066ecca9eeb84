package backend

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/store"
)

// Kind represents the type of result emitted by the saver.
type Kind int

const (
	KindSaved Kind = iota
	KindPublished
)

func (k Kind) String() string {
	if k == KindPublished {
		return "published"
	}
	return "saved"
}

// Event conveys the outcome of one write. Draft is the stored draft on
// success and the submitted snapshot on failure.
type Event struct {
	Kind   Kind
	Draft  store.Draft
	Manual bool
	Err    error
}

// Repository is the part of the store the saver writes through.
type Repository interface {
	SaveDraft(ctx context.Context, d store.Draft) (store.Draft, error)
	PublishDraft(ctx context.Context, d store.Draft) (store.Draft, error)
}

// ErrStopped is reported for writes handed to a saver that has shut down.
var ErrStopped = errors.New("saver stopped")

// DefaultInterval is the minimum gap between two autosaves.
const DefaultInterval = 1500 * time.Millisecond

type request struct {
	draft  store.Draft
	kind   Kind
	manual bool
	seq    uint64
}

func (r request) urgent() bool {
	return r.manual || r.kind == KindPublished
}

// Saver writes draft snapshots in the background. Submissions for the same
// draft coalesce so only the newest snapshot is written; autosaves are
// throttled while manual saves and publishes go out immediately.
type Saver struct {
	repo     Repository
	throttle *throttle

	ctx     context.Context
	cancel  context.CancelFunc
	quit    context.Context
	stopNow context.CancelFunc

	mu      sync.Mutex
	pending map[int64]request
	seq     uint64
	stopped bool

	wake   chan struct{}
	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewSaver starts a saver writing through repo. Cancelling ctx stops the
// saver like Stop does: pending snapshots are still written, on a context
// that keeps ctx's values but not its cancellation.
func NewSaver(ctx context.Context, repo Repository, interval time.Duration) *Saver {
	quit, stopNow := context.WithCancel(ctx)
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &Saver{
		repo:     repo,
		throttle: newThrottle(interval),
		ctx:      ctx,
		cancel:   cancel,
		quit:     quit,
		stopNow:  stopNow,
		pending:  make(map[int64]request),
		wake:     make(chan struct{}, 1),
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	go func() {
		s.wg.Wait()
		cancel()
		close(s.events)
		close(s.done)
	}()

	return s
}

// Events returns a channel of write results. It is closed once the saver has
// stopped.
func (s *Saver) Events() <-chan Event {
	return s.events
}

// Submit queues a save of d. Unsaved drafts (ID zero) and submissions after
// Stop or cancellation are rejected.
func (s *Saver) Submit(d store.Draft, manual bool) bool {
	return s.enqueue(request{draft: d, kind: KindSaved, manual: manual})
}

// Publish queues a publish of d.
func (s *Saver) Publish(d store.Draft) bool {
	return s.enqueue(request{draft: d, kind: KindPublished, manual: true})
}

// Pending returns the number of drafts waiting to be written.
func (s *Saver) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop flushes pending writes and shuts the saver down. Use Wait if a clean
// drain is required (e.g. in tests).
func (s *Saver) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.stopNow()
}

// Wait blocks until the worker has exited and the events channel is closed.
func (s *Saver) Wait() {
	<-s.done
}

func (s *Saver) enqueue(r request) bool {
	if r.draft.ID == 0 {
		return false
	}
	s.mu.Lock()
	if s.stopped || s.quit.Err() != nil {
		s.mu.Unlock()
		return false
	}
	if prev, ok := s.pending[r.draft.ID]; ok {
		if prev.kind > r.kind {
			r.kind = prev.kind
		}
		r.manual = r.manual || prev.manual
		r.seq = prev.seq
		events.Store.Coalesce(r.draft.ID, len(s.pending))
	} else {
		s.seq++
		r.seq = s.seq
	}
	s.pending[r.draft.ID] = r
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *Saver) hasUrgent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.pending {
		if r.urgent() {
			return true
		}
	}
	return false
}

func (s *Saver) take() []request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]request, 0, len(s.pending))
	for _, r := range s.pending {
		out = append(out, r)
	}
	clear(s.pending)
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (s *Saver) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.quit.Done():
			s.flush()
			return
		case <-s.wake:
		}

		if s.hasUrgent() {
			s.throttle.claim()
		} else if !s.throttle.wait(s.quit) {
			s.flush()
			return
		}
		for _, r := range s.take() {
			evt := s.write(s.ctx, r)
			select {
			case s.events <- evt:
			case <-s.quit.Done():
			}
		}
	}
}

// flush writes whatever is still pending after Stop or cancellation.
// Results are delivered only if there is room; nobody may be listening any
// more.
func (s *Saver) flush() {
	for _, r := range s.take() {
		evt := s.write(s.ctx, r)
		select {
		case s.events <- evt:
		default:
		}
	}
}

func (s *Saver) write(ctx context.Context, r request) Event {
	evt := Event{Kind: r.kind, Draft: r.draft, Manual: r.manual}
	var (
		saved store.Draft
		err   error
	)
	switch r.kind {
	case KindPublished:
		saved, err = s.repo.PublishDraft(ctx, r.draft)
		events.Store.Publish(r.draft.ID, err)
	default:
		saved, err = s.repo.SaveDraft(ctx, r.draft)
		events.Store.Save(r.draft.ID, r.manual, err)
	}
	if err != nil {
		evt.Err = err
		return evt
	}
	evt.Draft = saved
	return evt
}
