package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/atomicstack/chapters/internal/app"
	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/config"
	"github.com/atomicstack/chapters/internal/store"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DBPath:     "drafts.db",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "chapters.toml",
		Flags: map[string]string{
			"db":      "drafts.db",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--db", "drafts.db"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["db"] != "drafts.db" {
		t.Fatalf("expected db flag %q, got %v", "drafts.db", flagsValue["db"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "chapters.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

type cliEnv struct {
	db  string
	log string
	env []string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	return cliEnv{
		db:  filepath.Join(dir, "drafts.db"),
		log: filepath.Join(dir, "chapters.log"),
		env: []string{"HOME=" + dir},
	}
}

func (c cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(c.env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--db", c.db, "--log-file", c.log))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func seedDrafts(t *testing.T, path string) (store.Draft, store.Draft) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	plain := store.NewDraft()
	plain.Mood = "hopeful"
	plain, err = st.CreateDraft(ctx, plain)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	done := store.NewDraft()
	done.Title = "Letters to nobody"
	first, _ := done.Blocks.At(0)
	done.Blocks = done.Blocks.UpdateBlockContent(first.ID, composer.Text{Text: "Dear nobody,"})
	done.Blocks, _, _ = done.Blocks.AddBlock(composer.KindQuote)
	done, err = st.CreateDraft(ctx, done)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if done, err = st.PublishDraft(ctx, done); err != nil {
		t.Fatalf("publish draft: %v", err)
	}
	return plain, done
}

func TestDraftsCommandListsStoredDrafts(t *testing.T) {
	cli := newCLIEnv(t)
	out, err := cli.run(t, "drafts")
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	if !strings.Contains(out, "No drafts yet.") {
		t.Fatalf("expected empty notice, got %q", out)
	}

	seedDrafts(t, cli.db)
	out, err = cli.run(t, "drafts")
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "ID  TITLE") {
		t.Fatalf("expected header first, got %q", lines[0])
	}
	if !strings.Contains(out, "Letters to nobody") || !strings.Contains(out, "published") {
		t.Fatalf("expected published draft listed, got %q", out)
	}
	if !strings.Contains(out, "Untitled") || !strings.Contains(out, "hopeful") {
		t.Fatalf("expected untitled draft listed, got %q", out)
	}
}

func TestExportCommandPrintsPayload(t *testing.T) {
	cli := newCLIEnv(t)
	_, done := seedDrafts(t, cli.db)

	out, err := cli.run(t, "export", idArg(done.ID))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var payload composer.PublishPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, out)
	}
	if payload.Title != "Letters to nobody" || len(payload.Blocks) != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Blocks[1].Kind != composer.KindQuote || payload.Blocks[1].Position != 1 {
		t.Fatalf("expected quote at position 1, got %+v", payload.Blocks[1])
	}
	if !strings.Contains(out, `"block_type": "text"`) {
		t.Fatalf("expected wire block type, got %s", out)
	}

	out, err = cli.run(t, "export", "--published", idArg(done.ID))
	if err != nil {
		t.Fatalf("export --published: %v", err)
	}
	var pubs []composer.PublishPayload
	if err := json.Unmarshal([]byte(out), &pubs); err != nil || len(pubs) != 1 {
		t.Fatalf("expected one publication, got %v (%v)", pubs, err)
	}
}

func TestExportCommandErrors(t *testing.T) {
	cli := newCLIEnv(t)
	plain, _ := seedDrafts(t, cli.db)

	if _, err := cli.run(t, "export", "abc"); err == nil {
		t.Fatalf("expected invalid id to fail")
	}
	if _, err := cli.run(t, "export", "999"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := cli.run(t, "export", "--published", idArg(plain.ID)); err == nil {
		t.Fatalf("expected unpublished draft to fail")
	}
}

func TestRootCommandRunsApp(t *testing.T) {
	cli := newCLIEnv(t)
	var got app.Config
	runApp = func(ctx context.Context, cfg app.Config) error {
		got = cfg
		return nil
	}
	t.Cleanup(func() { runApp = app.Run })

	if _, err := cli.run(t, "--width", "90", "--tab", "muse", "--draft", "7"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Width != 90 || got.InitialTab != "muse" || got.DraftID != 7 || got.DBPath != cli.db {
		t.Fatalf("unexpected app config %+v", got)
	}
}

func TestRootCommandRejectsBadConfig(t *testing.T) {
	cli := newCLIEnv(t)
	called := false
	runApp = func(context.Context, app.Config) error {
		called = true
		return nil
	}
	t.Cleanup(func() { runApp = app.Run })

	_, err := cli.run(t, "--width=-3")
	var exit exitError
	if !errors.As(err, &exit) || exit.code != 2 {
		t.Fatalf("expected configuration exit code 2, got %v", err)
	}
	if called {
		t.Fatalf("expected app not to start")
	}
}

func idArg(id int64) string {
	return strconv.FormatInt(id, 10)
}
