package config

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popup-picker/internal/app"
	"github.com/atomicstack/popup-picker/internal/keymap"
	"github.com/atomicstack/popup-picker/internal/menu"
	"github.com/atomicstack/popup-picker/internal/picker"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWindowSize = "POPUP_PICKER_WINDOW_SIZE"
	envWrap       = "POPUP_PICKER_WRAP"
	envKeymap     = "POPUP_PICKER_KEYMAP"
	envSource     = "POPUP_PICKER_SOURCE"
	envInput      = "POPUP_PICKER_INPUT"
	envSocketPath = "POPUP_PICKER_SOCKET"
	envRefresh    = "POPUP_PICKER_REFRESH"
	envWidth      = "POPUP_PICKER_WIDTH"
	envHeight     = "POPUP_PICKER_HEIGHT"
	envShowFooter = "POPUP_PICKER_FOOTER"
	envKeepOpen   = "POPUP_PICKER_KEEP_OPEN"
	envTrace      = "POPUP_PICKER_TRACE"
	envLogFile    = "POPUP_PICKER_LOG_FILE"
)

const defaultWindowSize = 16

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popup-picker", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	windowSize := fs.Int("window-size", envOrInt(env, envWindowSize, defaultWindowSize), "number of list rows shown at once")
	wrap := fs.Bool("wrap", envOrBool(env, envWrap, false), "cycle focus past the last node instead of stopping")
	keymapPath := fs.String("keymap", envOrDefault(env, envKeymap, ""), "path to a TOML key binding file")
	source := fs.String("source", envOrDefault(env, envSource, "demo"), "item source: "+strings.Join(menu.SourceNames(), ", "))
	input := fs.String("input", envOrDefault(env, envInput, ""), "file read by the lines source (- for stdin)")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, 0), "reload the source at this interval (0 disables)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help (disabled by default)")
	keepOpen := fs.Bool("keep-open", envOrBool(env, envKeepOpen, false), "keep running after a selection")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	bindings := picker.DefaultBindings()
	if path := strings.TrimSpace(*keymapPath); path != "" {
		overrides, err := LoadKeymap(path)
		if err != nil {
			return Config{}, err
		}
		bindings = keymap.Merge(bindings, overrides)
	}

	inputPath := strings.TrimSpace(*input)
	if *source == "lines" && inputPath == "" {
		inputPath = "-"
	}

	cfg := Config{
		App: app.Config{
			WindowSize: *windowSize,
			Wrap:       *wrap,
			Bindings:   bindings,
			Source:     strings.TrimSpace(*source),
			InputPath:  inputPath,
			SocketPath: *socket,
			Refresh:    *refresh,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			KeepOpen:   *keepOpen,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"windowSize": strconv.Itoa(*windowSize),
			"wrap":       strconv.FormatBool(*wrap),
			"keymap":     *keymapPath,
			"source":     *source,
			"input":      inputPath,
			"socket":     *socket,
			"refresh":    refresh.String(),
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"keepOpen":   strconv.FormatBool(*keepOpen),
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
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

// Validate rejects configurations the picker cannot start with.
func Validate(cfg Config) error {
	if cfg.App.WindowSize < 1 {
		return fmt.Errorf("window-size must be >= 1 (got %d)", cfg.App.WindowSize)
	}
	if cfg.App.Refresh < 0 {
		return fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh)
	}
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("width and height must be >= 0 (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if !slices.Contains(menu.SourceNames(), cfg.App.Source) {
		return fmt.Errorf("unknown source %q (want one of %s)", cfg.App.Source, strings.Join(menu.SourceNames(), ", "))
	}
	return nil
}
