package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atomicstack/chapters/internal/app"
	"github.com/atomicstack/chapters/internal/backend"
	"github.com/atomicstack/chapters/internal/state"
	"github.com/atomicstack/chapters/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// File is the config file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const envPrefix = "CHAPTERS"

// Keys double as flag names and, upper-cased behind the prefix, as
// environment variables (db -> CHAPTERS_DB, log-file -> CHAPTERS_LOG_FILE).
const (
	keyDB           = "db"
	keyWidth        = "width"
	keyHeight       = "height"
	keyFooter       = "footer"
	keyVerbose      = "verbose"
	keyTrace        = "trace"
	keyLogFile      = "log-file"
	keyDraft        = "draft"
	keyTab          = "tab"
	keySaveInterval = "save-interval"
	keyToastTTL     = "toast-ttl"
	keyPreviewStyle = "preview-style"
	keyTabWidth     = "tab-width"
	keyMoreWidth    = "more-width"
	keyMinVisible   = "min-visible"
	keyScrollStep   = "scroll-step"

	keyConfig  = "config"
	keyEnvFile = "env-file"
)

var settingKeys = []string{
	keyDB, keyWidth, keyHeight, keyFooter, keyVerbose, keyTrace, keyLogFile,
	keyDraft, keyTab, keySaveInterval, keyToastTTL, keyPreviewStyle,
	keyTabWidth, keyMoreWidth, keyMinVisible, keyScrollStep,
}

var previewStyles = []string{"dark", "light", "notty", "dracula", "pink", "tokyo-night", "ascii"}

// EnvName returns the environment variable that sets key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	metrics := ui.DefaultTabMetrics()
	fs.String(keyConfig, "", "path to a TOML config file")
	fs.String(keyEnvFile, ".env", "dotenv file read before the environment (missing file is ignored)")
	fs.String(keyDB, "", "path to the drafts database")
	fs.Int(keyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(keyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(keyFooter, false, "enable footer hint row")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
	fs.Bool(keyVerbose, false, "toast every successful autosave")
	fs.String(keyLogFile, "", "path to the log file")
	fs.Int64(keyDraft, 0, "open the draft with this id")
	fs.String(keyTab, ui.TabIDs()[0], "tab to start on")
	fs.Duration(keySaveInterval, backend.DefaultInterval, "minimum gap between autosaves")
	fs.Duration(keyToastTTL, state.DefaultToastTTL, "how long notifications stay visible")
	fs.String(keyPreviewStyle, "dark", "markdown style for the preview tab")
	fs.Int(keyTabWidth, metrics.TabWidth, "estimated tab width in cells")
	fs.Int(keyMoreWidth, metrics.MoreWidth, "width of the more trigger in cells")
	fs.Int(keyMinVisible, metrics.MinVisible, "fewest tabs shown before tabs overflow")
	fs.Int(keyScrollStep, metrics.ScrollStep, "cells the tab strip scrolls per step")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("chapters", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// FromFlags resolves the configuration for an already parsed flag set.
// Precedence, highest first: flags that were set, the environment, the
// dotenv file, the config file, flag defaults.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	if err := mergeDotenv(fs, env); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	for _, key := range settingKeys {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	file, err := configFile(fs, env)
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	// viper only reads the process environment, so the supplied one is
	// layered on top of the file instead.
	overrides := map[string]interface{}{}
	for _, key := range settingKeys {
		if val, ok := env[EnvName(key)]; ok && strings.TrimSpace(val) != "" {
			overrides[key] = val
		}
	}
	if err := v.MergeConfigMap(overrides); err != nil {
		return Config{}, fmt.Errorf("merge environment: %w", err)
	}

	dbPath := v.GetString(keyDB)
	if dbPath == "" {
		dbPath = defaultDBPath(env)
	}
	cfg := Config{
		App: app.Config{
			DBPath:       dbPath,
			Width:        v.GetInt(keyWidth),
			Height:       v.GetInt(keyHeight),
			ShowFooter:   v.GetBool(keyFooter),
			Verbose:      v.GetBool(keyVerbose),
			DraftID:      v.GetInt64(keyDraft),
			InitialTab:   v.GetString(keyTab),
			SaveInterval: v.GetDuration(keySaveInterval),
			ToastTTL:     v.GetDuration(keyToastTTL),
			PreviewStyle: v.GetString(keyPreviewStyle),
			TabWidth:     v.GetInt(keyTabWidth),
			MoreWidth:    v.GetInt(keyMoreWidth),
			MinVisible:   v.GetInt(keyMinVisible),
			ScrollStep:   v.GetInt(keyScrollStep),
		},
		Logging: Logging{
			FilePath: v.GetString(keyLogFile),
			Trace:    v.GetBool(keyTrace),
		},
		Features: Features{
			Verbose: v.GetBool(keyVerbose),
		},
		File: file,
		Flags: map[string]string{
			"db":           dbPath,
			"width":        strconv.Itoa(v.GetInt(keyWidth)),
			"height":       strconv.Itoa(v.GetInt(keyHeight)),
			"footer":       strconv.FormatBool(v.GetBool(keyFooter)),
			"trace":        strconv.FormatBool(v.GetBool(keyTrace)),
			"verbose":      strconv.FormatBool(v.GetBool(keyVerbose)),
			"logFile":      v.GetString(keyLogFile),
			"draft":        strconv.FormatInt(v.GetInt64(keyDraft), 10),
			"tab":          v.GetString(keyTab),
			"saveInterval": v.GetDuration(keySaveInterval).String(),
			"toastTTL":     v.GetDuration(keyToastTTL).String(),
			"previewStyle": v.GetString(keyPreviewStyle),
		},
		Args: fs.Args(),
	}
	return cfg, nil
}

// mergeDotenv adds values from the dotenv file that the environment does not
// already define.
func mergeDotenv(fs *pflag.FlagSet, env map[string]string) error {
	path, _ := fs.GetString(keyEnvFile)
	if path == "" {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !fs.Changed(keyEnvFile) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, val := range values {
		if _, ok := env[k]; !ok {
			env[k] = val
		}
	}
	return nil
}

// configFile picks the explicit config path, or the default one when it
// exists.
func configFile(fs *pflag.FlagSet, env map[string]string) (string, error) {
	if path, _ := fs.GetString(keyConfig); path != "" {
		return path, nil
	}
	if path := env[EnvName(keyConfig)]; path != "" {
		return path, nil
	}
	dir := env["XDG_CONFIG_HOME"]
	if dir == "" {
		home := env["HOME"]
		if home == "" {
			return "", nil
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, "chapters", "config.toml")
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func defaultDBPath(env map[string]string) string {
	if dir := env["XDG_DATA_HOME"]; dir != "" {
		return filepath.Join(dir, "chapters", "chapters.db")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "chapters", "chapters.db")
	}
	return "chapters.db"
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	a := cfg.App
	var errs []error
	if a.DBPath == "" {
		errs = append(errs, errors.New("db path must not be empty"))
	}
	if a.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", a.Width))
	}
	if a.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", a.Height))
	}
	if a.DraftID < 0 {
		errs = append(errs, fmt.Errorf("draft must be >= 0 (got %d)", a.DraftID))
	}
	if a.InitialTab != "" && !slices.Contains(ui.TabIDs(), a.InitialTab) {
		errs = append(errs, fmt.Errorf("unknown tab %q (want one of %s)", a.InitialTab, strings.Join(ui.TabIDs(), ", ")))
	}
	if a.SaveInterval < 0 {
		errs = append(errs, fmt.Errorf("save-interval must be >= 0 (got %s)", a.SaveInterval))
	}
	if a.ToastTTL <= 0 {
		errs = append(errs, fmt.Errorf("toast-ttl must be > 0 (got %s)", a.ToastTTL))
	}
	if a.PreviewStyle != "" && !slices.Contains(previewStyles, a.PreviewStyle) {
		errs = append(errs, fmt.Errorf("unknown preview style %q", a.PreviewStyle))
	}
	for _, metric := range []struct {
		name string
		val  int
	}{
		{keyTabWidth, a.TabWidth},
		{keyMoreWidth, a.MoreWidth},
		{keyMinVisible, a.MinVisible},
		{keyScrollStep, a.ScrollStep},
	} {
		if metric.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0 (got %d)", metric.name, metric.val))
		}
	}
	return errors.Join(errs...)
}
