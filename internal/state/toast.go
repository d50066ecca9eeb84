package state

import (
	"sync"
	"time"
)

// ToastKind classifies a toast for styling.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 3 * time.Second

// maxToasts bounds the queue; the oldest toast is dropped first.
const maxToasts = 5

// Toast is a transient notification.
type Toast struct {
	ID      uint64
	Kind    ToastKind
	Text    string
	Expires time.Time
}

// ToastStore queues transient notifications. Expiry is evaluated lazily
// against the store clock whenever the queue is read.
type ToastStore interface {
	Push(kind ToastKind, text string) Toast
	Active() []Toast
	Latest() (Toast, bool)
	Dismiss(id uint64) bool
	Clear()
}

type toastStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	nextID uint64
	queue  []Toast
}

// NewToastStore returns a ToastStore. A non-positive ttl uses
// DefaultToastTTL and a nil clock uses time.Now.
func NewToastStore(ttl time.Duration, now func() time.Time) ToastStore {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	if now == nil {
		now = time.Now
	}
	return &toastStore{ttl: ttl, now: now}
}

func (s *toastStore) Push(kind ToastKind, text string) Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	toast := Toast{ID: s.nextID, Kind: kind, Text: text, Expires: s.now().Add(s.ttl)}
	s.queue = append(s.queue, toast)
	if len(s.queue) > maxToasts {
		s.queue = append([]Toast(nil), s.queue[len(s.queue)-maxToasts:]...)
	}
	return toast
}

func (s *toastStore) Active() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	if len(s.queue) == 0 {
		return nil
	}
	dup := make([]Toast, len(s.queue))
	copy(dup, s.queue)
	return dup
}

func (s *toastStore) Latest() (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	if len(s.queue) == 0 {
		return Toast{}, false
	}
	return s.queue[len(s.queue)-1], true
}

func (s *toastStore) Dismiss(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.queue {
		if t.ID == id {
			s.queue = append(s.queue[:i:i], s.queue[i+1:]...)
			return true
		}
	}
	return false
}

func (s *toastStore) Clear() {
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
}

func (s *toastStore) expireLocked() {
	now := s.now()
	kept := s.queue[:0]
	for _, t := range s.queue {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	s.queue = kept
}
