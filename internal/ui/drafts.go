package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/chapters/internal/logging"
	"github.com/atomicstack/chapters/internal/state"
	"github.com/atomicstack/chapters/internal/store"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

const draftTimeLayout = "2006-01-02 15:04"

func summaryItem(s store.Summary) uistate.Item {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = "Untitled"
	}
	parts := []string{fmt.Sprintf("%d blocks", s.Blocks)}
	if s.Mood != "" {
		parts = append(parts, s.Mood)
	}
	if !s.UpdatedAt.IsZero() {
		parts = append(parts, "edited "+s.UpdatedAt.Local().Format(draftTimeLayout))
	}
	if !s.PublishedAt.IsZero() {
		parts = append(parts, "published")
	}
	return uistate.Item{ID: strconv.FormatInt(s.ID, 10), Label: title, Detail: strings.Join(parts, " · ")}
}

func (m *Model) handleDraftsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(draftsLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		logging.Error(loaded.err)
		m.pushToast(state.ToastError, fmt.Sprintf("Could not list drafts: %v", loaded.err))
		return nil
	}
	items := make([]uistate.Item, len(loaded.drafts))
	for i, s := range loaded.drafts {
		items[i] = summaryItem(s)
	}
	m.drafts.SetItems(items)
	return nil
}

func (m *Model) handleDraftOpenedMsg(msg tea.Msg) tea.Cmd {
	opened, ok := msg.(draftOpenedMsg)
	if !ok {
		return nil
	}
	if opened.err != nil {
		logging.Error(opened.err)
		text := fmt.Sprintf("Could not open draft: %v", opened.err)
		if errors.Is(opened.err, store.ErrNotFound) {
			text = "That draft no longer exists"
		}
		m.pushToast(state.ToastError, text)
		return nil
	}
	d := opened.draft
	m.draft = d
	m.draftReady = true
	m.status.Reset(d.ID, d.UpdatedAt, d.PublishedAt)
	m.blocks = uistate.NewList(tabCompose, nil)
	m.syncBlocks()
	m.syncDetails()
	m.resetMuse(nil)
	m.refreshPreview()
	if opened.created {
		m.pushToast(state.ToastInfo, "Started a new draft")
	}
	if opened.focus && m.bar.Active() != tabCompose {
		return m.selectTab(tabCompose, false)
	}
	return nil
}

func (m *Model) handleDraftDeletedMsg(msg tea.Msg) tea.Cmd {
	deleted, ok := msg.(draftDeletedMsg)
	if !ok {
		return nil
	}
	if deleted.err != nil {
		logging.Error(deleted.err)
		m.pushToast(state.ToastError, fmt.Sprintf("Delete failed: %v", deleted.err))
		return nil
	}
	m.pushToast(state.ToastSuccess, "Draft deleted")
	return m.listDraftsCmd()
}

func (m *Model) handleDraftsKey(msg tea.KeyMsg) tea.Cmd {
	if m.repo == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Select):
		id, ok := m.currentDraftID()
		if !ok {
			return nil
		}
		if id == m.draft.ID {
			return m.selectTab(tabCompose, false)
		}
		return tea.Batch(m.flushDirty(), m.openDraftCmd(id))
	case key.Matches(msg, m.keys.NewDraft):
		return tea.Batch(m.flushDirty(), m.newDraftCmd())
	case key.Matches(msg, m.keys.Delete):
		id, ok := m.currentDraftID()
		if !ok {
			return nil
		}
		if id == m.draft.ID {
			m.pushToast(state.ToastError, "The open draft can't be deleted")
			return nil
		}
		return m.deleteDraftCmd(id)
	case key.Matches(msg, m.keys.Refresh):
		return m.listDraftsCmd()
	case key.Matches(msg, m.keys.Filter):
		m.startFilter()
	default:
		m.moveListCursor(m.drafts, msg, m.bodyHeight()-1)
	}
	return nil
}

func (m *Model) currentDraftID() (int64, bool) {
	item, ok := m.drafts.Current()
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// flushDirty saves the open draft before another one replaces it.
func (m *Model) flushDirty() tea.Cmd {
	if !m.status.Status().Dirty {
		return nil
	}
	return m.submit(false)
}

func (m *Model) viewDrafts(width int) []styledLine {
	lines := []styledLine{{text: "Drafts  (n new · x delete · r refresh)", style: styles.Header}}
	return append(lines, m.viewList(m.drafts, width, m.bodyHeight()-1)...)
}
