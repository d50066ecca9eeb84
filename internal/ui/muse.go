package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/muse"
	"github.com/atomicstack/chapters/internal/state"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

const (
	museActionPrefix     = "action:"
	museSuggestionPrefix = "suggestion:"
)

// syncMuse lists the actions, or the suggestions of the last answer ranked
// against the filter.
func (m *Model) syncMuse() {
	if m.museState == nil {
		hasContent := m.draft.Blocks.HasContent()
		infos := muse.Actions()
		items := make([]uistate.Item, len(infos))
		for i, info := range infos {
			detail := info.Description
			if info.NeedsContent && !hasContent {
				detail += " (write something first)"
			}
			items[i] = uistate.Item{ID: museActionPrefix + string(info.Action), Label: info.Label, Detail: detail}
		}
		m.museList.SetItems(items)
		return
	}
	if !m.museState.Applicable() {
		m.museList.SetItems(nil)
		return
	}
	ranked := muse.Filter(m.museState.Suggestions, m.museList.Filter)
	items := make([]uistate.Item, len(ranked))
	for i, s := range ranked {
		items[i] = uistate.Item{ID: museSuggestionPrefix + s, Label: s}
	}
	m.museList.SetItems(items)
}

func (m *Model) resetMuse(result *muse.Result) {
	m.museState = result
	m.museList = uistate.NewList(tabMuse, nil)
	m.filtering = false
	m.syncMuse()
}

func (m *Model) handleMuseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.museState != nil {
			m.resetMuse(nil)
		}
	case key.Matches(msg, m.keys.Select):
		item, ok := m.museList.Current()
		if !ok {
			return nil
		}
		if m.museState == nil {
			m.askMuse(muse.Action(strings.TrimPrefix(item.ID, museActionPrefix)))
			return nil
		}
		return m.applySuggestion(m.museState.Action, item.Label)
	case key.Matches(msg, m.keys.Filter):
		m.startFilter()
	default:
		m.moveListCursor(m.museList, msg, m.bodyHeight())
	}
	return nil
}

func (m *Model) askMuse(a muse.Action) {
	res := muse.Suggest(a, m.draft.Blocks.HasContent())
	events.UI.Muse(string(a), res.Applicable())
	m.resetMuse(&res)
}

func (m *Model) applySuggestion(a muse.Action, text string) tea.Cmd {
	switch a {
	case muse.Title:
		cmd := m.setTitle(text)
		m.pushToast(state.ToastSuccess, "Title updated")
		return cmd
	case muse.Mood:
		cmd := m.setMood(text)
		m.pushToast(state.ToastSuccess, "Mood updated")
		return cmd
	case muse.FirstLine:
		return m.insertFirstLine(text)
	default:
		m.pushToast(state.ToastInfo, text)
		return nil
	}
}

// insertFirstLine fills the first blank text block, appending one when
// there is none, and returns to the composer.
func (m *Model) insertFirstLine(text string) tea.Cmd {
	blocks := m.draft.Blocks
	target := ""
	for _, b := range blocks.Blocks() {
		if b.Kind() == composer.KindText && b.Blank() {
			target = b.ID
			break
		}
	}
	if target == "" {
		next, added, ok := blocks.AddBlock(composer.KindText)
		events.Composer.Add(composer.KindText.String(), added.ID, ok, next.Len())
		if !ok {
			m.pushToast(state.ToastError, "No room for another block")
			return nil
		}
		blocks, target = next, added.ID
	}
	d := m.draft
	d.Blocks = blocks.UpdateBlockContent(target, composer.Text{Text: text})
	events.Composer.Update(target, composer.KindText.String())
	cmd := m.applyDraft(d, false)
	m.blocks.Select(target)
	m.resetMuse(nil)
	return tea.Batch(cmd, m.selectTab(tabCompose, false))
}

func (m *Model) viewMuse(width int) []styledLine {
	if m.museState == nil {
		lines := []styledLine{{text: "Ask the Muse", style: styles.Header}}
		return append(lines, m.viewList(m.museList, width, m.bodyHeight()-1)...)
	}
	label := string(m.museState.Action)
	if info, ok := muse.Lookup(m.museState.Action); ok {
		label = info.Label
	}
	lines := []styledLine{{text: "Muse · " + label + "  (esc to go back)", style: styles.Header}}
	if !m.museState.Applicable() {
		prompt := m.museState.Prompt
		if prompt == "" {
			prompt = "No suggestions."
		}
		return append(lines, styledLine{text: prompt, style: styles.Info})
	}
	return append(lines, m.viewList(m.museList, width, m.bodyHeight()-1)...)
}
