package dispatcher

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/atomicstack/chapters/internal/backend"
	"github.com/atomicstack/chapters/internal/state"
	"github.com/atomicstack/chapters/internal/store"
)

// Result reports what a saver event changed.
type Result struct {
	Saved     bool
	Published bool
	Failed    bool
	// Stale is set when the event belongs to a draft that is no longer open.
	Stale bool
	Draft store.Draft
}

// Dispatcher folds saver events into the UI stores.
type Dispatcher struct {
	toasts state.ToastStore
	status state.DraftStatusStore
}

func New(t state.ToastStore, s state.DraftStatusStore) *Dispatcher {
	return &Dispatcher{toasts: t, status: s}
}

// Handle applies evt against the draft currently open in the editor.
func (d *Dispatcher) Handle(evt backend.Event, current store.Draft) Result {
	res := Result{Draft: evt.Draft}
	if evt.Draft.ID != current.ID {
		res.Stale = true
		if evt.Err != nil {
			d.toasts.Push(state.ToastError, fmt.Sprintf("Saving %q failed: %v", evt.Draft.DisplayTitle(), evt.Err))
		}
		return res
	}
	if evt.Err != nil {
		res.Failed = true
		d.status.MarkFailed(evt.Draft.ID, evt.Err)
		if evt.Kind == backend.KindPublished {
			d.toasts.Push(state.ToastError, fmt.Sprintf("Publish failed: %v", evt.Err))
		} else {
			d.toasts.Push(state.ToastError, fmt.Sprintf("Save failed: %v", evt.Err))
		}
		return res
	}
	dirty := !samePayload(evt.Draft, current)
	switch evt.Kind {
	case backend.KindPublished:
		res.Published = true
		d.status.MarkSaved(evt.Draft.ID, evt.Draft.UpdatedAt, dirty)
		d.status.MarkPublished(evt.Draft.ID, evt.Draft.PublishedAt)
		d.toasts.Push(state.ToastSuccess, "Chapter published")
	default:
		res.Saved = true
		d.status.MarkSaved(evt.Draft.ID, evt.Draft.UpdatedAt, dirty)
		if evt.Manual {
			d.toasts.Push(state.ToastSuccess, "Draft saved")
		}
	}
	return res
}

func samePayload(a, b store.Draft) bool {
	left, err := json.Marshal(a.Payload())
	if err != nil {
		return false
	}
	right, err := json.Marshal(b.Payload())
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}
