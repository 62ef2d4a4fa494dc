package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/popup-picker/internal/app"
	"github.com/atomicstack/popup-picker/internal/config"
	"github.com/atomicstack/popup-picker/internal/logging"
	"github.com/atomicstack/popup-picker/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]any {
	flags := make(map[string]any, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]any{
		"argv":     cfg.Args,
		"flags":    flags,
		"source":   cfg.App.Source,
		"window":   cfg.App.WindowSize,
		"bindings": len(cfg.App.Bindings),
		"tty":      probeTerminals(),
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
	return payload
}

type ttyReport struct {
	Size   *ttySize   `json:"size,omitempty"`
	Probes []ttyProbe `json:"probes"`
}

type ttySize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTerminals reports which standard descriptors are terminals. The
// first one with a readable size is recorded as the popup size.
func probeTerminals() ttyReport {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	report := ttyReport{Probes: make([]ttyProbe, 0, len(files))}
	for i, f := range files {
		probe := ttyProbe{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.IsTerminal = true
			if w, h, err := term.GetSize(fd); err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = w, h
				if report.Size == nil {
					report.Size = &ttySize{Source: probe.Name, Width: w, Height: h}
				}
			}
		}
		report.Probes = append(report.Probes, probe)
	}
	return report
}
