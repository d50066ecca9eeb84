package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/chapters/internal/app"
	"github.com/atomicstack/chapters/internal/config"
	"github.com/atomicstack/chapters/internal/format/table"
	"github.com/atomicstack/chapters/internal/logging"
	"github.com/atomicstack/chapters/internal/logging/events"
	"github.com/atomicstack/chapters/internal/store"
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

var runApp = app.Run

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Environ())
	err := root.ExecuteContext(ctx)
	logging.Sync()
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", exit.err)
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newRootCmd(environ []string) *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:   "chapters",
		Short: "Compose chapters in the terminal",
		Long: `chapters is a terminal composer for Chapters drafts.

Run without arguments to open the composer. Drafts autosave to a local
database; the drafts and export commands read the same database.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.FromFlags(cmd.Flags(), environ)
			if err != nil {
				return exitError{code: 2, err: err}
			}
			if err := config.Validate(loaded); err != nil {
				return exitError{code: 2, err: err}
			}
			cfg = loaded
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			if cfg.File != "" {
				events.App.Config(cfg.File, nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			traceStartup(cfg)
			err := runApp(cmd.Context(), cfg.App)
			if err != nil {
				logging.Error(err)
				events.App.Stop(err.Error())
				return err
			}
			events.App.Stop("exit")
			return nil
		},
	}
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newDraftsCmd(&cfg), newExportCmd(&cfg))
	return root
}

func newDraftsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "List stored drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(cmd.Context(), cfg.App.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()
			drafts, err := st.ListDrafts(cmd.Context())
			if err != nil {
				return err
			}
			return writeDrafts(cmd.OutOrStdout(), drafts)
		},
	}
}

func writeDrafts(w io.Writer, drafts []store.Summary) error {
	if len(drafts) == 0 {
		_, err := fmt.Fprintln(w, "No drafts yet.")
		return err
	}
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		status := "draft"
		if !d.PublishedAt.IsZero() {
			status = "published"
		}
		title := d.Title
		if title == "" {
			title = "Untitled"
		}
		rows = append(rows, []string{
			strconv.FormatInt(d.ID, 10),
			title,
			strconv.Itoa(d.Blocks),
			d.Mood,
			status,
			d.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	lines := table.Render([]table.Column{
		{Header: "ID", Align: table.AlignRight},
		{Header: "TITLE", Max: 40},
		{Header: "BLOCKS", Align: table.AlignRight},
		{Header: "MOOD", Max: 20},
		{Header: "STATUS"},
		{Header: "UPDATED"},
	}, rows)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var published bool
	cmd := &cobra.Command{
		Use:   "export <draft-id>",
		Short: "Print the publish payload of a draft as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid draft id %q", args[0])
			}
			st, err := store.Open(cmd.Context(), cfg.App.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			var out interface{}
			if published {
				pubs, err := st.Publications(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(pubs) == 0 {
					return fmt.Errorf("draft %d has not been published", id)
				}
				out = pubs
			} else {
				d, err := st.GetDraft(cmd.Context(), id)
				if err != nil {
					return err
				}
				out = d.Payload()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&published, "published", false, "print every published payload instead of the current draft")
	return cmd
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
