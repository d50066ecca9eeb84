package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/state"
	"github.com/atomicstack/chapters/internal/store"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

// rowsPerBlock is the height of one block in the compose list.
const rowsPerBlock = 2

// syncBlocks rebuilds the compose list from the open draft.
func (m *Model) syncBlocks() {
	blocks := m.draft.Blocks.Blocks()
	items := make([]uistate.Item, len(blocks))
	for i, b := range blocks {
		items[i] = uistate.Item{
			ID:     b.ID,
			Label:  fmt.Sprintf("%d. %s", i+1, b.Kind()),
			Detail: blockSummary(b.Content),
			Group:  b.Kind().String(),
		}
	}
	m.blocks.SetItems(items)
}

func blockSummary(c composer.Content) string {
	if composer.IsBlank(c) {
		return ""
	}
	text := strings.TrimSpace(c.Primary())
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + " …"
	}
	switch v := c.(type) {
	case composer.Quote:
		if v.Source != "" {
			text += " (" + v.Source + ")"
		}
	case composer.Image:
		if v.Caption != "" {
			text += " · " + v.Caption
		}
	case composer.Audio:
		if v.Title != "" {
			text = v.Title + " · " + text
		}
	case composer.Video:
		if v.Caption != "" {
			text += " · " + v.Caption
		}
	}
	return text
}

// applyDraft makes next the open draft and hands it to the saver.
func (m *Model) applyDraft(next store.Draft, manual bool) tea.Cmd {
	m.draft = next
	m.status.MarkDirty()
	m.syncBlocks()
	m.syncDetails()
	m.refreshPreview()
	return m.submit(manual)
}

func (m *Model) handleComposeKey(msg tea.KeyMsg) tea.Cmd {
	if kind, ok := m.keys.addKinds()[msg.String()]; ok {
		return m.addBlock(kind)
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.blocks.Current(); ok {
			m.openEditor(item.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		return m.deleteCurrentBlock()
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveCurrentBlock(composer.Up)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveCurrentBlock(composer.Down)
	case key.Matches(msg, m.keys.Title):
		m.openTitleForm()
	default:
		m.moveListCursor(m.blocks, msg, m.composeVisibleBlocks())
	}
	return nil
}

func (m *Model) addBlock(kind composer.Kind) tea.Cmd {
	next, added, ok := m.draft.Blocks.AddBlock(kind)
	events.Composer.Add(kind.String(), added.ID, ok, next.Len())
	if !ok {
		if !m.draft.Blocks.CanAddBlock() {
			m.pushToast(state.ToastError, fmt.Sprintf("A chapter holds at most %d blocks", composer.MaxBlocks))
		} else {
			m.pushToast(state.ToastError, fmt.Sprintf("Only %d media blocks per chapter", composer.MaxMediaBlocks))
		}
		return nil
	}
	d := m.draft
	d.Blocks = next
	cmd := m.applyDraft(d, false)
	m.blocks.Select(added.ID)
	m.openEditor(added.ID)
	return cmd
}

func (m *Model) deleteCurrentBlock() tea.Cmd {
	item, ok := m.blocks.Current()
	if !ok {
		return nil
	}
	if m.draft.Blocks.Len() <= 1 {
		m.pushToast(state.ToastInfo, "A chapter keeps at least one block")
		return nil
	}
	d := m.draft
	d.Blocks = d.Blocks.DeleteBlock(item.ID)
	events.Composer.Delete(item.ID, d.Blocks.Len())
	return m.applyDraft(d, false)
}

func (m *Model) moveCurrentBlock(dir composer.Direction) tea.Cmd {
	item, ok := m.blocks.Current()
	if !ok {
		return nil
	}
	next := m.draft.Blocks.MoveBlock(item.ID, dir)
	if next.Index(item.ID) == m.draft.Blocks.Index(item.ID) {
		return nil
	}
	events.Composer.Move(item.ID, dir.String(), next.Index(item.ID))
	d := m.draft
	d.Blocks = next
	cmd := m.applyDraft(d, false)
	m.blocks.Select(item.ID)
	return cmd
}

// commitBlock stores edited content. Unchanged content is not re-saved.
func (m *Model) commitBlock(id string, content composer.Content, manual bool) tea.Cmd {
	current, ok := m.draft.Blocks.Get(id)
	if !ok {
		return nil
	}
	if current.Content == content {
		if manual {
			return m.saveNow()
		}
		return nil
	}
	events.Composer.Update(id, content.Kind().String())
	d := m.draft
	d.Blocks = d.Blocks.UpdateBlockContent(id, content)
	cmd := m.applyDraft(d, manual)
	m.blocks.Select(id)
	return cmd
}

// composeVisibleBlocks is how many blocks fit in the body.
func (m *Model) composeVisibleBlocks() int {
	h := m.bodyHeight() - 1
	if h <= 0 {
		return -1
	}
	return max(h/rowsPerBlock, 1)
}

func (m *Model) viewCompose(width int) []styledLine {
	lines := []styledLine{m.titleLine()}
	visible, offset := m.blocks.Window(m.composeVisibleBlocks())
	for i, item := range visible {
		idx := offset + i
		line := m.buildItemLine(item, item.Label, idx, m.blocks, width)
		line.style = styles.BlockKind
		if idx == m.blocks.Cursor {
			line.style = styles.BlockSelected
		}
		lines = append(lines, line)
		body := item.Detail
		bodyStyle := styles.BlockBody
		if body == "" {
			body = "(empty " + item.Group + ")"
			bodyStyle = styles.BlockEmpty
		}
		lines = append(lines, styledLine{text: "    " + body, style: bodyStyle})
	}
	m.hit = listHit{list: m.blocks, top: 1, rows: rowsPerBlock, offset: offset, count: len(visible)}
	return lines
}

func (m *Model) titleLine() styledLine {
	title := strings.TrimSpace(m.draft.Title)
	if title == "" {
		return styledLine{text: "Untitled chapter (T to name it)", style: styles.BlockEmpty}
	}
	return styledLine{text: title, style: styles.Title}
}

// moveListCursor applies the shared navigation keys to l.
func (m *Model) moveListCursor(l *uistate.List, msg tea.KeyMsg, maxVisible int) bool {
	moved := false
	switch {
	case key.Matches(msg, m.keys.Up):
		moved = l.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		moved = l.MoveCursor(1)
	case key.Matches(msg, m.keys.Home):
		moved = l.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		moved = l.MoveCursorEnd()
	case key.Matches(msg, m.keys.PageUp):
		moved = l.MoveCursorPageUp(maxVisible)
	case key.Matches(msg, m.keys.PageDown):
		moved = l.MoveCursorPageDown(maxVisible)
	}
	if moved {
		l.EnsureCursorVisible(maxVisible)
	}
	return moved
}
