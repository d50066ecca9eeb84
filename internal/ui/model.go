package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/chapters/internal/backend"
	"github.com/atomicstack/chapters/internal/data/dispatcher"
	"github.com/atomicstack/chapters/internal/logging"
	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/muse"
	"github.com/atomicstack/chapters/internal/preview"
	"github.com/atomicstack/chapters/internal/state"
	"github.com/atomicstack/chapters/internal/store"
	"github.com/atomicstack/chapters/internal/tabs"
	"github.com/atomicstack/chapters/internal/theme"
	"github.com/atomicstack/chapters/internal/ui/command"
	uistate "github.com/atomicstack/chapters/internal/ui/state"
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeBlockEditor
	ModeTitleForm
	ModeMoodForm
	ModeJump
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Repository is the part of the draft store the UI reads and writes.
type Repository interface {
	CreateDraft(ctx context.Context, d store.Draft) (store.Draft, error)
	GetDraft(ctx context.Context, id int64) (store.Draft, error)
	SaveDraft(ctx context.Context, d store.Draft) (store.Draft, error)
	PublishDraft(ctx context.Context, d store.Draft) (store.Draft, error)
	ListDrafts(ctx context.Context) ([]store.Summary, error)
	DeleteDraft(ctx context.Context, id int64) error
	ListThemes(ctx context.Context) ([]store.Theme, error)
}

// Options configures a Model.
type Options struct {
	// Width and Height pin the view size; zero follows the terminal.
	Width  int
	Height int

	ShowFooter bool
	Verbose    bool

	// DraftID opens an existing draft; zero resumes the most recently
	// edited draft or starts a new one.
	DraftID    int64
	InitialTab string

	Metrics      tabs.Metrics
	PreviewStyle string
	ToastTTL     time.Duration

	// Now overrides the clock used for chords and toasts.
	Now func() time.Time
}

// Model implements the Bubble Tea model for the chapter composer.
type Model struct {
	ctx         context.Context
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	now         func() time.Time
	errMsg      string

	repo       Repository
	saver      *backend.Saver
	bus        *command.Bus
	handlers   map[reflect.Type]msgHandler
	mode       Mode
	keys       keyMap
	help       help.Model
	toasts     state.ToastStore
	status     state.DraftStatusStore
	dispatcher *dispatcher.Dispatcher

	bar       *tabs.Bar
	regions   []region
	menuQuery string
	chord     chordState
	jump      *jumpPrompt

	draft        store.Draft
	draftReady   bool
	initialDraft int64
	themes       []store.Theme
	themeNames   map[int]string

	blocks    *uistate.List
	editor    *blockEditor
	textForm  *textForm
	drafts    *uistate.List
	details   *uistate.List
	museList  *uistate.List
	museState *muse.Result
	filtering bool

	renderer     *preview.Renderer
	viewport     viewport.Model
	previewErr   string
	previewStale bool

	hit listHit

	// tick schedules timers; nil disables toast expiry redraws.
	tick       func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	toastTimer bool
}

// NewModel initialises the UI. saver may be nil, in which case writes run
// as commands against repo.
func NewModel(ctx context.Context, repo Repository, saver *backend.Saver, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	metrics := opts.Metrics
	if metrics.TabWidth <= 0 {
		metrics = DefaultTabMetrics()
	}
	toasts := state.NewToastStore(opts.ToastTTL, now)
	status := state.NewDraftStatusStore()
	renderer, err := preview.NewRenderer(opts.PreviewStyle, preview.DefaultCacheSize)
	if err != nil {
		logging.Error(err)
	}
	m := &Model{
		ctx:          ctx,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		now:          now,
		repo:         repo,
		saver:        saver,
		bus:          command.New(),
		mode:         ModeBrowse,
		keys:         defaultKeyMap(),
		help:         help.New(),
		toasts:       toasts,
		status:       status,
		dispatcher:   dispatcher.New(toasts, status),
		bar:          tabs.NewBar(metrics, defaultTabs()),
		draft:        store.NewDraft(),
		initialDraft: opts.DraftID,
		themeNames:   map[int]string{},
		blocks:       uistate.NewList(tabCompose, nil),
		drafts:       uistate.NewList(tabDrafts, nil),
		details:      uistate.NewList(tabDetails, nil),
		museList:     uistate.NewList(tabMuse, nil),
		renderer:     renderer,
		viewport:     viewport.New(0, 0),
		tick:         tea.Tick,
	}
	m.details.MultiSelect = true
	m.previewStale = true
	m.syncBlocks()
	m.syncDetails()
	m.syncMuse()
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.syncTabBar()
	if opts.InitialTab != "" {
		m.bar.Select(opts.InitialTab)
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadThemesCmd(), m.openInitialDraftCmd()}
	if m.saver != nil {
		cmds = append(cmds, waitForSaverEvent(m.saver))
	}
	if m.bar.Active() == tabDrafts {
		cmds = append(cmds, m.listDraftsCmd())
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.armToastExpiry())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m.quit()
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		return cmd
	}
	if handler := m.handlerFor(msg); handler != nil {
		return handler(msg)
	}
	return nil
}

type toastExpiredMsg struct{}

// armToastExpiry schedules a redraw for when the oldest toast runs out.
func (m *Model) armToastExpiry() tea.Cmd {
	if m.toastTimer || m.tick == nil {
		return nil
	}
	active := m.toasts.Active()
	if len(active) == 0 {
		return nil
	}
	m.toastTimer = true
	wait := max(active[0].Expires.Sub(m.now()), 0)
	return m.tick(wait, func(time.Time) tea.Msg { return toastExpiredMsg{} })
}

func (m *Model) handleToastExpiredMsg(tea.Msg) tea.Cmd {
	m.toastTimer = false
	return nil
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeBlockEditor:
		return m.handleBlockEditor(msg)
	case ModeTitleForm, ModeMoodForm:
		return m.handleTextForm(msg)
	case ModeJump:
		return m.handleJump(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(themesLoadedMsg{}):   m.handleThemesLoadedMsg,
		reflect.TypeOf(draftOpenedMsg{}):    m.handleDraftOpenedMsg,
		reflect.TypeOf(draftsLoadedMsg{}):   m.handleDraftsLoadedMsg,
		reflect.TypeOf(draftDeletedMsg{}):   m.handleDraftDeletedMsg,
		reflect.TypeOf(saverEventMsg{}):     m.handleSaverEventMsg,
		reflect.TypeOf(saverDoneMsg{}):      m.handleSaverDoneMsg,
		reflect.TypeOf(toastExpiredMsg{}):   m.handleToastExpiredMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Draft returns the open draft.
func (m *Model) Draft() store.Draft {
	return m.draft
}

// ActiveTab returns the id of the active tab.
func (m *Model) ActiveTab() string {
	return m.bar.Active()
}

// Mode returns the current input mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Status returns the save status of the open draft.
func (m *Model) Status() state.DraftStatus {
	return m.status.Status()
}

// Toasts returns the visible toasts, oldest first.
func (m *Model) Toasts() []state.Toast {
	return m.toasts.Active()
}

func (m *Model) pushToast(kind state.ToastKind, text string) {
	toast := m.toasts.Push(kind, text)
	logToast(toast)
}

func logToast(t state.Toast) {
	events.UI.Toast(t.Kind.String(), t.Text)
}

// quit flushes unsaved edits before exiting. The saver writes anything still
// pending when the app stops it.
func (m *Model) quit() tea.Cmd {
	if !m.status.Status().Dirty {
		return tea.Quit
	}
	return tea.Sequence(m.submit(false), tea.Quit)
}
