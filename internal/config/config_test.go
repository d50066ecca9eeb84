package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolatedEnv points HOME somewhere empty so no user config is picked up.
func isolatedEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	return append([]string{"HOME=" + t.TempDir()}, extra...)
}

func TestLoadArgsDefaults(t *testing.T) {
	env := isolatedEnv(t)
	cfg, err := LoadArgs(nil, env)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	home := env[0][len("HOME="):]
	require.Equal(t, filepath.Join(home, ".local", "share", "chapters", "chapters.db"), cfg.App.DBPath)
	require.Equal(t, 0, cfg.App.Width)
	require.Equal(t, "compose", cfg.App.InitialTab)
	require.Equal(t, 1500*time.Millisecond, cfg.App.SaveInterval)
	require.Equal(t, 3*time.Second, cfg.App.ToastTTL)
	require.Equal(t, 14, cfg.App.TabWidth)
	require.Equal(t, 3, cfg.App.MinVisible)
	require.Empty(t, cfg.File)
	require.False(t, cfg.Logging.Trace)
}

func TestLoadArgsFlagsBeatEnvironment(t *testing.T) {
	env := isolatedEnv(t, "CHAPTERS_WIDTH=90", "CHAPTERS_HEIGHT=20", "CHAPTERS_TRACE=true")
	cfg, err := LoadArgs([]string{"--width", "120", "--tab", "drafts"}, env)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.App.Width)
	require.Equal(t, 20, cfg.App.Height)
	require.True(t, cfg.Logging.Trace)
	require.Equal(t, "drafts", cfg.App.InitialTab)
	require.Equal(t, "120", cfg.Flags["width"])
	require.Equal(t, []string{"--width", "120", "--tab", "drafts"}, cfg.Args)
}

func TestLoadArgsEnvironmentNames(t *testing.T) {
	env := isolatedEnv(t,
		"CHAPTERS_LOG_FILE=/tmp/chapters.log",
		"CHAPTERS_SAVE_INTERVAL=250ms",
		"CHAPTERS_PREVIEW_STYLE=light",
		"CHAPTERS_DB=/tmp/drafts.db",
	)
	cfg, err := LoadArgs(nil, env)
	require.NoError(t, err)
	require.Equal(t, "/tmp/chapters.log", cfg.Logging.FilePath)
	require.Equal(t, 250*time.Millisecond, cfg.App.SaveInterval)
	require.Equal(t, "light", cfg.App.PreviewStyle)
	require.Equal(t, "/tmp/drafts.db", cfg.App.DBPath)
	require.Equal(t, "CHAPTERS_LOG_FILE", EnvName("log-file"))
}

func TestLoadArgsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapters.toml")
	contents := "width = 70\nfooter = true\ntab = \"muse\"\ntab-width = 12\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	env := isolatedEnv(t, "CHAPTERS_WIDTH=80")
	cfg, err := LoadArgs([]string{"--config", path}, env)
	require.NoError(t, err)
	require.Equal(t, path, cfg.File)
	require.Equal(t, 80, cfg.App.Width, "environment overrides the file")
	require.True(t, cfg.App.ShowFooter)
	require.Equal(t, "muse", cfg.App.InitialTab)
	require.Equal(t, 12, cfg.App.TabWidth)
	require.Equal(t, 12, cfg.App.Metrics().TabWidth)
}

func TestLoadArgsDefaultConfigLocation(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "chapters"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "chapters", "config.toml"), []byte("height = 33\n"), 0o600))

	cfg, err := LoadArgs(nil, isolatedEnv(t, "XDG_CONFIG_HOME="+xdg, "XDG_DATA_HOME="+xdg))
	require.NoError(t, err)
	require.Equal(t, 33, cfg.App.Height)
	require.Equal(t, filepath.Join(xdg, "chapters", "chapters.db"), cfg.App.DBPath)
}

func TestLoadArgsMissingConfigFile(t *testing.T) {
	_, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}, isolatedEnv(t))
	require.Error(t, err)
}

func TestLoadArgsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.env")
	require.NoError(t, os.WriteFile(path, []byte("CHAPTERS_WIDTH=64\nCHAPTERS_HEIGHT=18\n"), 0o600))

	cfg, err := LoadArgs([]string{"--env-file", path}, isolatedEnv(t, "CHAPTERS_HEIGHT=40"))
	require.NoError(t, err)
	require.Equal(t, 64, cfg.App.Width)
	require.Equal(t, 40, cfg.App.Height, "the real environment wins over the dotenv file")

	_, err = LoadArgs([]string{"--env-file", path + ".missing"}, isolatedEnv(t))
	require.Error(t, err, "an explicit env file must exist")
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	_, err := LoadArgs([]string{"--socket", "x"}, isolatedEnv(t))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"--width=-1", "--tab", "nowhere", "--toast-ttl", "0s", "--tab-width", "0"}, isolatedEnv(t))
	require.NoError(t, err)
	err = Validate(cfg)
	require.Error(t, err)
	require.ErrorContains(t, err, "width must be >= 0")
	require.ErrorContains(t, err, `unknown tab "nowhere"`)
	require.ErrorContains(t, err, "toast-ttl must be > 0")
	require.ErrorContains(t, err, "tab-width must be > 0")

	cfg, err = LoadArgs([]string{"--preview-style", "neon"}, isolatedEnv(t))
	require.NoError(t, err)
	require.ErrorContains(t, Validate(cfg), "unknown preview style")
}
