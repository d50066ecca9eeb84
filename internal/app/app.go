package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/chapters/internal/backend"
	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/store"
	"github.com/atomicstack/chapters/internal/tabs"
	"github.com/atomicstack/chapters/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	DBPath     string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool

	DraftID    int64
	InitialTab string

	SaveInterval time.Duration
	ToastTTL     time.Duration
	PreviewStyle string

	TabWidth   int
	MoreWidth  int
	MinVisible int
	ScrollStep int
}

// Metrics returns the tab bar metrics, falling back to the cell defaults for
// unset values.
func (c Config) Metrics() tabs.Metrics {
	m := ui.DefaultTabMetrics()
	if c.TabWidth > 0 {
		m.TabWidth = c.TabWidth
	}
	if c.MoreWidth > 0 {
		m.MoreWidth = c.MoreWidth
	}
	if c.MinVisible > 0 {
		m.MinVisible = c.MinVisible
	}
	if c.ScrollStep > 0 {
		m.ScrollStep = c.ScrollStep
	}
	return m
}

func (c Config) uiOptions() ui.Options {
	return ui.Options{
		Width:        c.Width,
		Height:       c.Height,
		ShowFooter:   c.ShowFooter,
		Verbose:      c.Verbose,
		DraftID:      c.DraftID,
		InitialTab:   c.InitialTab,
		Metrics:      c.Metrics(),
		PreviewStyle: c.PreviewStyle,
		ToastTTL:     c.ToastTTL,
	}
}

// newProgram is swapped out in tests.
var newProgram = func(ctx context.Context, model tea.Model) interface{ Run() (tea.Model, error) } {
	return tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
}

// Run opens the draft store and executes the Bubble Tea program. Pending
// writes are flushed before it returns.
func Run(ctx context.Context, cfg Config) error {
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open draft store: %w", err)
	}
	defer st.Close()
	events.Store.Open(st.Path())

	saver := backend.NewSaver(ctx, st, cfg.SaveInterval)
	model := ui.NewModel(ctx, st, saver, cfg.uiOptions())
	program := newProgram(ctx, model)

	var g errgroup.Group
	g.Go(func() error {
		defer saver.Stop()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		saver.Wait()
		return nil
	})
	return g.Wait()
}
