package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging/events"
)

const (
	editorAreaHeight = 6
	urlCharLimit     = 2048
	shortCharLimit   = 280
)

// editorField is one input of the block editor. Exactly one of area and
// input is set.
type editorField struct {
	label string
	area  *textarea.Model
	input *textinput.Model
}

func (f *editorField) value() string {
	if f.area != nil {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *editorField) focus() {
	if f.area != nil {
		f.area.Focus()
		return
	}
	f.input.Focus()
}

func (f *editorField) blur() {
	if f.area != nil {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *editorField) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.area != nil {
		*f.area, cmd = f.area.Update(msg)
		return cmd
	}
	*f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *editorField) view() string {
	if f.area != nil {
		return f.area.View()
	}
	return f.input.View()
}

func newAreaField(label, value string, width int) editorField {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetWidth(max(width, 20))
	ta.SetHeight(editorAreaHeight)
	ta.SetValue(value)
	return editorField{label: label, area: &ta}
}

func newInputField(label, value, placeholder string, limit int) editorField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	return editorField{label: label, input: &ti}
}

// blockEditor edits the content of one block. Its fields follow the block
// kind; the kind itself never changes.
type blockEditor struct {
	blockID string
	kind    composer.Kind
	fields  []editorField
	focused int
	err     string
}

func newBlockEditor(b composer.Block, width int) *blockEditor {
	e := &blockEditor{blockID: b.ID, kind: b.Kind()}
	switch c := b.Content.(type) {
	case composer.Quote:
		e.fields = []editorField{
			newAreaField("Quote", c.Text, width),
			newInputField("Source", c.Source, "who said it", shortCharLimit),
		}
	case composer.Image:
		e.fields = []editorField{
			newInputField("Image URL", c.URL, "https://", urlCharLimit),
			newInputField("Caption", c.Caption, "optional", shortCharLimit),
		}
	case composer.Audio:
		e.fields = []editorField{
			newInputField("Audio URL", c.URL, "https://", urlCharLimit),
			newInputField("Title", c.Title, "optional", shortCharLimit),
		}
	case composer.Video:
		e.fields = []editorField{
			newInputField("Video URL", c.URL, "https://", urlCharLimit),
			newInputField("Caption", c.Caption, "optional", shortCharLimit),
		}
	default:
		text := ""
		if t, ok := b.Content.(composer.Text); ok {
			text = t.Text
		}
		e.fields = []editorField{newAreaField("Text", text, width)}
	}
	e.fields[0].focus()
	return e
}

// Content builds the block content from the fields.
func (e *blockEditor) Content() composer.Content {
	v := func(i int) string {
		if i >= len(e.fields) {
			return ""
		}
		return e.fields[i].value()
	}
	trim := func(i int) string { return strings.TrimSpace(v(i)) }
	switch e.kind {
	case composer.KindQuote:
		return composer.Quote{Text: v(0), Source: trim(1)}
	case composer.KindImage:
		return composer.Image{URL: trim(0), Caption: trim(1)}
	case composer.KindAudio:
		return composer.Audio{URL: trim(0), Title: trim(1)}
	case composer.KindVideo:
		return composer.Video{URL: trim(0), Caption: trim(1)}
	default:
		return composer.Text{Text: v(0)}
	}
}

func (e *blockEditor) focusField(i int) {
	n := len(e.fields)
	i = ((i % n) + n) % n
	e.fields[e.focused].blur()
	e.focused = i
	e.fields[i].focus()
}

func (e *blockEditor) validate() string {
	if !e.kind.IsMedia() {
		return ""
	}
	url := strings.TrimSpace(e.fields[0].value())
	if url != "" && !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "Links must start with http:// or https://"
	}
	return ""
}

// Update returns a command, whether the edit is complete and whether it was
// cancelled. save is set when the user asked for an explicit save.
func (e *blockEditor) Update(msg tea.Msg) (cmd tea.Cmd, done, cancel, save bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e.fields[e.focused].update(msg), false, false, false
	}
	switch keyMsg.String() {
	case "esc":
		events.Composer.EditCancel(e.blockID)
		return nil, false, true, false
	case "tab":
		e.focusField(e.focused + 1)
		return nil, false, false, false
	case "shift+tab":
		e.focusField(e.focused - 1)
		return nil, false, false, false
	case "ctrl+d", "ctrl+s":
		if e.err = e.validate(); e.err != "" {
			return nil, false, false, false
		}
		return nil, true, false, keyMsg.String() == "ctrl+s"
	case "enter":
		if e.fields[e.focused].input != nil && e.focused == len(e.fields)-1 {
			if e.err = e.validate(); e.err != "" {
				return nil, false, false, false
			}
			return nil, true, false, false
		}
		if e.fields[e.focused].input != nil {
			e.focusField(e.focused + 1)
			return nil, false, false, false
		}
	}
	cmd = e.fields[e.focused].update(msg)
	e.err = ""
	return cmd, false, false, false
}

func (e *blockEditor) title() string {
	return fmt.Sprintf("Edit %s block", e.kind)
}

func (e *blockEditor) view() []styledLine {
	lines := []styledLine{{text: e.title(), style: styles.Header}}
	for i := range e.fields {
		f := &e.fields[i]
		labelStyle := styles.Info
		if i == e.focused {
			labelStyle = styles.FilterPrompt
		}
		lines = append(lines, styledLine{text: f.label, style: labelStyle})
		for _, row := range strings.Split(f.view(), "\n") {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	if e.err != "" {
		lines = append(lines, styledLine{text: e.err, style: styles.Error})
	}
	lines = append(lines, styledLine{text: "tab next field  ctrl+d done  ctrl+s save  esc cancel", style: styles.Footer})
	return lines
}

func (m *Model) openEditor(id string) {
	b, ok := m.draft.Blocks.Get(id)
	if !ok {
		return
	}
	m.editor = newBlockEditor(b, m.width-4)
	m.mode = ModeBlockEditor
}

func (m *Model) handleBlockEditor(msg tea.Msg) (bool, tea.Cmd) {
	if m.editor == nil {
		return false, nil
	}
	switch msg.(type) {
	case tea.KeyMsg:
	default:
		// results and resizes still reach their handlers
		return false, nil
	}
	cmd, done, cancel, save := m.editor.Update(msg)
	if cancel {
		m.editor = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		id, content := m.editor.blockID, m.editor.Content()
		m.editor = nil
		m.mode = ModeBrowse
		return true, tea.Batch(cmd, m.commitBlock(id, content, save))
	}
	return true, cmd
}
