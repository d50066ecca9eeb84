package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/backend"
	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging"
	"github.com/atomicstack/chapters/internal/state"
	"github.com/atomicstack/chapters/internal/store"
	"github.com/atomicstack/chapters/internal/ui/command"
)

func waitForSaverEvent(s *backend.Saver) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-s.Events()
		if !ok {
			return saverDoneMsg{}
		}
		return saverEventMsg{evt: evt, live: true}
	}
}

// saverEventMsg carries a write result. live marks events read from the
// saver channel, which re-arm the listener.
type saverEventMsg struct {
	evt  backend.Event
	live bool
}

type saverDoneMsg struct{}

func (m *Model) handleSaverEventMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(saverEventMsg)
	if !ok {
		return nil
	}
	var cmds []tea.Cmd
	if update.live {
		cmds = append(cmds, waitForSaverEvent(m.saver))
	}
	cmds = append(cmds, m.applySaverEvent(update.evt))
	return tea.Batch(cmds...)
}

func (m *Model) handleSaverDoneMsg(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) applySaverEvent(evt backend.Event) tea.Cmd {
	logging.Error(evt.Err)
	res := m.dispatcher.Handle(evt, m.draft)
	if !res.Stale && !res.Failed {
		m.draft.UpdatedAt = res.Draft.UpdatedAt
		if res.Published {
			m.draft.PublishedAt = res.Draft.PublishedAt
		}
	}
	if m.verbose && res.Saved && !evt.Manual {
		m.pushToast(state.ToastInfo, "Autosaved")
	} else if latest, ok := m.toasts.Latest(); ok && !res.Stale {
		logToast(latest)
	}
	if m.bar.Active() == tabDrafts {
		return m.listDraftsCmd()
	}
	return nil
}

// submit hands the open draft to the saver. Without a saver the write runs
// as a command and reports back through the same event message.
func (m *Model) submit(manual bool) tea.Cmd {
	d := m.draft
	if d.ID == 0 {
		return nil
	}
	m.status.MarkSaving()
	if m.saver != nil {
		if !m.saver.Submit(d, manual) {
			m.status.MarkFailed(d.ID, backend.ErrStopped)
		}
		return nil
	}
	return m.writeCmd(d, backend.KindSaved, manual)
}

func (m *Model) saveNow() tea.Cmd {
	if m.draft.ID == 0 {
		m.pushToast(state.ToastError, "Nothing to save yet")
		return nil
	}
	return m.submit(true)
}

// publish runs the eligibility guard before handing the draft over.
func (m *Model) publish() tea.Cmd {
	d := m.draft
	if !composer.CanPublish(d.Title, d.Blocks) {
		m.pushToast(state.ToastError, "Add a title and some writing before publishing")
		return nil
	}
	if d.ID == 0 {
		m.pushToast(state.ToastError, "Nothing to publish yet")
		return nil
	}
	m.status.MarkSaving()
	if m.saver != nil {
		if !m.saver.Publish(d) {
			m.status.MarkFailed(d.ID, backend.ErrStopped)
		}
		return nil
	}
	return m.writeCmd(d, backend.KindPublished, true)
}

func (m *Model) writeCmd(d store.Draft, kind backend.Kind, manual bool) tea.Cmd {
	if m.repo == nil {
		return nil
	}
	repo, ctx := m.repo, m.ctx
	write := repo.SaveDraft
	if kind == backend.KindPublished {
		write = repo.PublishDraft
	}
	return m.bus.Execute(command.Request{ID: "draft:" + kind.String(), Label: d.DisplayTitle(), Run: func() tea.Msg {
		return saverEventMsg{evt: runWrite(ctx, write, d, kind, manual)}
	}})
}

func runWrite(ctx context.Context, write func(context.Context, store.Draft) (store.Draft, error), d store.Draft, kind backend.Kind, manual bool) backend.Event {
	stored, err := write(ctx, d)
	if err != nil {
		stored = d
	}
	return backend.Event{Kind: kind, Draft: stored, Manual: manual, Err: err}
}
