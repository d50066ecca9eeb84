package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging"
	"github.com/atomicstack/chapters/internal/state"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

const (
	groupField = "field"
	groupMood  = "mood"
	groupTheme = "theme"
)

func themeRowID(id int) string {
	return groupTheme + ":" + strconv.Itoa(id)
}

// syncDetails rebuilds the title, mood and theme rows from the open draft.
func (m *Model) syncDetails() {
	title := m.draft.Title
	if strings.TrimSpace(title) == "" {
		title = "(none)"
	}
	mood := m.draft.Mood
	if mood == "" {
		mood = "(none)"
	}
	items := []uistate.Item{
		{ID: groupField + ":title", Label: "Title: " + title, Group: groupField},
		{ID: groupField + ":mood", Label: "Mood: " + mood, Group: groupField},
	}
	for _, s := range composer.SuggestedMoods {
		items = append(items, uistate.Item{ID: groupMood + ":" + s, Label: "Mood · " + s, Group: groupMood})
	}
	for _, t := range m.themes {
		items = append(items, uistate.Item{ID: themeRowID(t.ID), Label: t.Name, Detail: t.Description, Group: groupTheme})
	}
	m.details.SetItems(items)
	selected := make([]string, 0, m.draft.Themes.Len())
	for _, id := range m.draft.Themes.IDs() {
		selected = append(selected, themeRowID(id))
	}
	m.details.SetSelected(selected)
}

func (m *Model) handleThemesLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(themesLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		logging.Error(loaded.err)
		m.pushToast(state.ToastError, fmt.Sprintf("Could not load themes: %v", loaded.err))
		return nil
	}
	m.themes = loaded.themes
	m.themeNames = make(map[int]string, len(loaded.themes))
	for _, t := range loaded.themes {
		m.themeNames[t.ID] = t.Name
	}
	m.syncDetails()
	m.refreshPreview()
	return nil
}

func (m *Model) handleDetailsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Toggle):
		item, ok := m.details.Current()
		if !ok {
			return nil
		}
		return m.activateDetail(item)
	case key.Matches(msg, m.keys.Filter):
		m.startFilter()
	case key.Matches(msg, m.keys.Title):
		m.openTitleForm()
	default:
		m.moveListCursor(m.details, msg, m.bodyHeight())
	}
	return nil
}

func (m *Model) activateDetail(item uistate.Item) tea.Cmd {
	switch item.Group {
	case groupField:
		if item.ID == groupField+":title" {
			m.openTitleForm()
		} else {
			m.openMoodForm()
		}
		return nil
	case groupMood:
		return m.setMood(strings.TrimPrefix(item.ID, groupMood+":"))
	case groupTheme:
		id, err := strconv.Atoi(strings.TrimPrefix(item.ID, groupTheme+":"))
		if err != nil {
			return nil
		}
		return m.toggleTheme(id)
	}
	return nil
}

func (m *Model) toggleTheme(id int) tea.Cmd {
	next, ok := m.draft.Themes.Toggle(id)
	if !ok {
		m.pushToast(state.ToastInfo, fmt.Sprintf("Pick up to %d themes", composer.MaxThemes))
		return nil
	}
	d := m.draft
	d.Themes = next
	return m.applyDraft(d, false)
}

func (m *Model) viewDetails(width int) []styledLine {
	lines := []styledLine{{
		text:  fmt.Sprintf("Themes %d/%d", m.draft.Themes.Len(), composer.MaxThemes),
		style: styles.Header,
	}}
	return append(lines, m.viewList(m.details, width, m.bodyHeight()-1)...)
}
