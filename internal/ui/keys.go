package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/logging/events"
)

type keyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	More     key.Binding
	Jump     key.Binding
	Save     key.Binding
	Publish  key.Binding
	Chord    key.Binding
	HelpTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Back     key.Binding
	Filter   key.Binding
	Toggle   key.Binding

	AddText  key.Binding
	AddQuote key.Binding
	AddImage key.Binding
	AddAudio key.Binding
	AddVideo key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Title    key.Binding

	NewDraft key.Binding
	Refresh  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		More:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "more tabs")),
		Jump:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "jump to tab")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Publish:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "publish")),
		Chord:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g c/p/d/t/m", "go to tab")),
		HelpTab:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),

		AddText:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "add text")),
		AddQuote: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "add quote")),
		AddImage: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "add image")),
		AddAudio: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "add audio")),
		AddVideo: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "add video")),
		Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit block")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "alt+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "alt+down"), key.WithHelp("J", "move down")),
		Title:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "edit title")),

		NewDraft: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new draft")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Jump, k.Save, k.Publish, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.More, k.Jump, k.Chord, k.HelpTab},
		{k.Save, k.Publish, k.Quit},
		{k.Up, k.Down, k.Home, k.End, k.Select, k.Back, k.Filter, k.Toggle},
		{k.AddText, k.AddQuote, k.AddImage, k.AddAudio, k.AddVideo},
		{k.Edit, k.Delete, k.MoveUp, k.MoveDown, k.Title},
		{k.NewDraft, k.Refresh},
	}
}

func (k keyMap) addKinds() map[string]composer.Kind {
	out := make(map[string]composer.Kind, 5)
	for b, kind := range map[*key.Binding]composer.Kind{
		&k.AddText:  composer.KindText,
		&k.AddQuote: composer.KindQuote,
		&k.AddImage: composer.KindImage,
		&k.AddAudio: composer.KindAudio,
		&k.AddVideo: composer.KindVideo,
	} {
		for _, s := range b.Keys() {
			out[s] = kind
		}
	}
	return out
}

// chordTimeout bounds the gap between the prefix and the second key.
const chordTimeout = time.Second

var chordTargets = map[string]string{
	"c": tabCompose,
	"p": tabPreview,
	"d": tabDrafts,
	"t": tabDetails,
	"m": tabMuse,
	"h": tabHelp,
}

type chordState struct {
	prefix string
	at     time.Time
}

func (c chordState) pending(now time.Time) bool {
	return c.prefix != "" && now.Sub(c.at) <= chordTimeout
}

// resolveChord consumes the key following a chord prefix. It returns the tab
// to jump to, or "" when the key does not complete a chord.
func (m *Model) resolveChord(k string) string {
	prefix := m.chord.prefix
	m.chord = chordState{}
	target, ok := chordTargets[k]
	events.UI.Chord(prefix, k, ok)
	return target
}
