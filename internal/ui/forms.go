package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/composer"
)

const titleCharLimit = 200

type textFormKind int

const (
	textFormTitle textFormKind = iota
	textFormMood
)

// textForm is a one-line prompt for the chapter title or mood.
type textForm struct {
	kind  textFormKind
	input textinput.Model
	title string
	help  string
}

func newTextForm(kind textFormKind, initial string) *textForm {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)
	f := &textForm{kind: kind, help: "Press Enter to save. Esc to cancel."}
	switch kind {
	case textFormMood:
		ti.Placeholder = "how does it feel?"
		ti.CharLimit = composer.MaxMoodLength
		f.title = "Mood"
	default:
		ti.Placeholder = "chapter title"
		ti.CharLimit = titleCharLimit
		f.title = "Title"
	}
	ti.SetValue(initial)
	ti.Focus()
	f.input = ti
	return f
}

func (f *textForm) Value() string {
	v := strings.TrimSpace(f.input.Value())
	if f.kind == textFormMood {
		return composer.ClampMood(v)
	}
	return v
}

func (f *textForm) InputView() string { return f.input.View() }

func (f *textForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "ctrl+u":
			f.input.SetValue("")
			f.input.CursorStart()
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			return nil, true, false
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd, false, false
}

func (f *textForm) view() []styledLine {
	return []styledLine{
		{text: f.title, style: styles.Header},
		{text: f.InputView(), raw: true},
		{},
		{text: f.help, style: styles.Footer},
	}
}

func (m *Model) openTitleForm() {
	m.textForm = newTextForm(textFormTitle, m.draft.Title)
	m.mode = ModeTitleForm
}

func (m *Model) openMoodForm() {
	m.textForm = newTextForm(textFormMood, m.draft.Mood)
	m.mode = ModeMoodForm
}

func (m *Model) handleTextForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.textForm == nil {
		return false, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	cmd, done, cancel := m.textForm.Update(msg)
	if cancel {
		m.textForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		form := m.textForm
		m.textForm = nil
		m.mode = ModeBrowse
		switch form.kind {
		case textFormMood:
			return true, tea.Batch(cmd, m.setMood(form.Value()))
		default:
			return true, tea.Batch(cmd, m.setTitle(form.Value()))
		}
	}
	return true, cmd
}

func (m *Model) setTitle(title string) tea.Cmd {
	if title == m.draft.Title {
		return nil
	}
	d := m.draft
	d.Title = title
	return m.applyDraft(d, false)
}

func (m *Model) setMood(mood string) tea.Cmd {
	mood = composer.ClampMood(mood)
	if mood == m.draft.Mood {
		return nil
	}
	d := m.draft
	d.Mood = mood
	return m.applyDraft(d, false)
}
