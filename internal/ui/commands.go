package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/store"
	"github.com/atomicstack/chapters/internal/ui/command"
)

type themesLoadedMsg struct {
	themes []store.Theme
	err    error
}

// draftOpenedMsg carries a loaded or created draft. focus switches to the
// composer once it is open.
type draftOpenedMsg struct {
	draft   store.Draft
	created bool
	focus   bool
	err     error
}

type draftsLoadedMsg struct {
	drafts []store.Summary
	err    error
}

type draftDeletedMsg struct {
	id  int64
	err error
}

func (m *Model) loadThemesCmd() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	repo, ctx := m.repo, m.ctx
	return m.bus.Execute(command.Request{ID: "themes:list", Label: "themes", Run: func() tea.Msg {
		themes, err := repo.ListThemes(ctx)
		return themesLoadedMsg{themes: themes, err: err}
	}})
}

func (m *Model) listDraftsCmd() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	repo, ctx := m.repo, m.ctx
	return m.bus.Execute(command.Request{ID: "drafts:list", Label: "drafts", Run: func() tea.Msg {
		drafts, err := repo.ListDrafts(ctx)
		return draftsLoadedMsg{drafts: drafts, err: err}
	}})
}

// openInitialDraftCmd opens the requested draft, else resumes the most
// recently edited unpublished draft, else starts a new one.
func (m *Model) openInitialDraftCmd() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	if m.initialDraft > 0 {
		return m.getDraftCmd(m.initialDraft, false)
	}
	repo, ctx := m.repo, m.ctx
	return m.bus.Execute(command.Request{ID: "draft:resume", Label: "resume", Run: func() tea.Msg {
		list, err := repo.ListDrafts(ctx)
		if err != nil {
			return draftOpenedMsg{err: err}
		}
		for _, s := range list {
			if s.PublishedAt.IsZero() {
				d, err := repo.GetDraft(ctx, s.ID)
				return draftOpenedMsg{draft: d, err: err}
			}
		}
		d, err := repo.CreateDraft(ctx, store.NewDraft())
		return draftOpenedMsg{draft: d, created: true, err: err}
	}})
}

func (m *Model) openDraftCmd(id int64) tea.Cmd {
	return m.getDraftCmd(id, true)
}

func (m *Model) getDraftCmd(id int64, focus bool) tea.Cmd {
	repo, ctx := m.repo, m.ctx
	return m.bus.Execute(command.Request{ID: "draft:open", Label: fmt.Sprintf("draft %d", id), Run: func() tea.Msg {
		d, err := repo.GetDraft(ctx, id)
		if err == nil {
			events.Store.Load(id, d.Blocks.Len())
		}
		return draftOpenedMsg{draft: d, focus: focus, err: err}
	}})
}

func (m *Model) newDraftCmd() tea.Cmd {
	repo, ctx := m.repo, m.ctx
	return m.bus.Execute(command.Request{ID: "draft:new", Label: "new draft", Run: func() tea.Msg {
		d, err := repo.CreateDraft(ctx, store.NewDraft())
		if err == nil {
			events.Store.Create(d.ID)
		}
		return draftOpenedMsg{draft: d, created: true, focus: true, err: err}
	}})
}

func (m *Model) deleteDraftCmd(id int64) tea.Cmd {
	repo, ctx := m.repo, m.ctx
	return m.bus.Execute(command.Request{ID: "draft:delete", Label: fmt.Sprintf("draft %d", id), Run: func() tea.Msg {
		err := repo.DeleteDraft(ctx, id)
		if err == nil {
			events.Store.Delete(id)
		}
		return draftDeletedMsg{id: id, err: err}
	}})
}
