package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/keymap"
	"github.com/atomicstack/popup-picker/internal/logging"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/menu"
	"github.com/atomicstack/popup-picker/internal/picker"
	"github.com/atomicstack/popup-picker/internal/tmux"
	"github.com/atomicstack/popup-picker/internal/ui"
	"github.com/atomicstack/popup-picker/internal/ui/state"
)

// Config describes user-provided application options.
type Config struct {
	WindowSize int
	Wrap       bool
	Bindings   []keymap.Binding
	Source     string
	InputPath  string
	SocketPath string
	Refresh    time.Duration
	Width      int
	Height     int
	ShowFooter bool
	KeepOpen   bool
}

var (
	resolveSocketPath = tmux.ResolveSocketPath
	stdoutIsTerminal  = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	openTTY           = func() (*os.File, error) { return os.OpenFile("/dev/tty", os.O_WRONLY, 0) }
)

// session is everything a program run needs, built before the terminal is
// taken over so configuration and load errors are reported plainly.
type session struct {
	model     *ui.Model
	watcher   *backend.Watcher
	results   *menu.Results
	usesStdin bool
	closers   []io.Closer
}

func (s *session) close() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logging.Error(fmt.Errorf("close: %w", err))
		}
	}
	s.closers = nil
}

// Run bootstraps and executes the Bubble Tea program, then writes the
// recorded results to stdout.
func Run(cfg Config) error {
	s, err := newSession(cfg, os.Stdin)
	if err != nil {
		return err
	}
	defer s.close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if s.usesStdin {
		opts = append(opts, tea.WithInputTTY())
	}
	tty, err := uiOutput()
	if err != nil {
		return err
	}
	if tty != nil {
		s.closers = append(s.closers, tty)
		opts = append(opts, tea.WithOutput(tty))
		lipgloss.SetColorProfile(lipgloss.NewRenderer(tty).ColorProfile())
	}
	program := tea.NewProgram(s.model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	lines := s.results.Lines()
	events.App.Exit(len(lines), err)
	if err != nil {
		return err
	}
	if err := writeResults(os.Stdout, lines); err != nil {
		return err
	}
	return s.results.Err()
}

func newSession(cfg Config, stdin io.Reader) (*session, error) {
	src, ok := menu.BuildRegistry().Find(cfg.Source)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}

	s := &session{results: menu.NewResults()}
	ctx := menu.Context{Results: s.results}

	if src.Name == "tmux" {
		socketPath, err := resolveSocketPath(cfg.SocketPath)
		if err != nil {
			return nil, fmt.Errorf("resolve socket path: %w", err)
		}
		ctx.SocketPath = socketPath
	}

	switch cfg.InputPath {
	case "":
	case "-":
		ctx.Input = stdin
		s.usesStdin = true
	default:
		f, err := os.Open(cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		s.closers = append(s.closers, f)
		ctx.Input = f
	}

	items, err := src.Load(ctx)
	events.Source.Load(src.Name, len(items), err)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("load %s items: %w", src.Name, err)
	}

	p, err := picker.New(picker.Config{
		WindowSize: cfg.WindowSize,
		Wrap:       cfg.Wrap,
		Bindings:   cfg.Bindings,
	}, state.NewQuery(""), picker.MatcherFunc(state.FilterItems))
	if err != nil {
		s.close()
		return nil, err
	}
	p.SetCandidates(items)

	if src.Refreshable {
		s.watcher = backend.NewWatcher(src.Name, func(context.Context) ([]menu.Item, error) {
			return src.Load(ctx)
		}, cfg.Refresh)
	}

	s.model = ui.NewModel(ui.Options{
		Title:      src.Name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		KeepOpen:   cfg.KeepOpen,
	}, p, s.watcher)
	return s, nil
}

// uiOutput returns the terminal to draw on when stdout carries results to a
// pipe or file. It returns nil when stdout is the terminal.
func uiOutput() (*os.File, error) {
	if stdoutIsTerminal() {
		return nil, nil
	}
	tty, err := openTTY()
	if err != nil {
		return nil, fmt.Errorf("open terminal for drawing: %w", err)
	}
	return tty, nil
}

func writeResults(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}
