package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/menu"
	"github.com/atomicstack/popup-picker/internal/picker"
)

type testPicker struct {
	harness  *Harness
	selected []string
}

func newTestHarness(t *testing.T, opts Options, cfg picker.Config, n int) *testPicker {
	t.Helper()
	if cfg.WindowSize == 0 {
		cfg.WindowSize = 5
	}
	p, err := picker.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new picker: %v", err)
	}
	tp := &testPicker{}
	items := make([]menu.Item, n)
	for i := range items {
		label := fmt.Sprintf("item-%02d", i)
		items[i] = menu.Item{ID: label, Label: label, OnSelect: func() { tp.selected = append(tp.selected, label) }}
	}
	p.SetCandidates(items)
	tp.harness = NewHarness(NewModel(opts, p, nil))
	return tp
}

func TestViewShowsWindowAndCounter(t *testing.T) {
	tp := newTestHarness(t, Options{Title: "demo", Width: 40}, picker.Config{}, 8)
	view := tp.harness.View()
	if !strings.Contains(view, "demo  8/8") {
		t.Fatalf("expected header with counter, view =\n%s", view)
	}
	if !strings.Contains(view, "item-04") || strings.Contains(view, "item-05") {
		t.Fatalf("expected only the first window of rows, view =\n%s", view)
	}
	if !strings.Contains(view, filterPromptText+"(type to search)") {
		t.Fatalf("expected placeholder prompt, view =\n%s", view)
	}
}

func TestWindowScrollsWithCursor(t *testing.T) {
	tp := newTestHarness(t, Options{Width: 40}, picker.Config{}, 10)
	tp.harness.SendKeys("tab")
	for i := 0; i < 6; i++ {
		tp.harness.SendKeys("j")
	}
	view := tp.harness.View()
	if strings.Contains(view, "item-01") {
		t.Fatalf("expected item-01 to scroll out of view, view =\n%s", view)
	}
	if !strings.Contains(view, "item-06") {
		t.Fatalf("expected item-06 visible after scrolling, view =\n%s", view)
	}
}

func TestTypingFiltersRows(t *testing.T) {
	tp := newTestHarness(t, Options{Width: 40}, picker.Config{}, 12)
	tp.harness.SendKeys("1", "1")
	view := tp.harness.View()
	if !strings.Contains(view, "item-11") || strings.Contains(view, "item-03") {
		t.Fatalf("expected only item-11 after typing, view =\n%s", view)
	}
	if !strings.Contains(view, "1/12") {
		t.Fatalf("expected match counter 1/12, view =\n%s", view)
	}

	tp.harness.SendKeys("z", "z")
	view = tp.harness.View()
	if !strings.Contains(view, `No matches for "11zz"`) {
		t.Fatalf("expected no matches message, view =\n%s", view)
	}
}

func TestEnterCommitsAndQuits(t *testing.T) {
	tp := newTestHarness(t, Options{}, picker.Config{}, 4)
	tp.harness.SendKeys("tab", "down", "enter")
	if len(tp.selected) != 1 || tp.selected[0] != "item-01" {
		t.Fatalf("expected item-01 selected, got %v", tp.selected)
	}
	if !tp.harness.Quit() || !tp.harness.Model().Quitting() {
		t.Fatalf("expected commit to quit the program")
	}
	if tp.harness.View() != "" {
		t.Fatalf("expected empty view after quitting")
	}
	tp.harness.SendKeys("enter")
	if len(tp.selected) != 1 {
		t.Fatalf("expected no further selections after quitting, got %v", tp.selected)
	}
}

func TestKeepOpenShowsSelection(t *testing.T) {
	tp := newTestHarness(t, Options{KeepOpen: true}, picker.Config{}, 4)
	tp.harness.SendKeys("tab", "enter", "j", "enter")
	if tp.harness.Quit() {
		t.Fatalf("expected keep-open to stay running")
	}
	if len(tp.selected) != 2 {
		t.Fatalf("expected two selections, got %v", tp.selected)
	}
	if !strings.Contains(tp.harness.View(), "Selected item-01") {
		t.Fatalf("expected selection info, view =\n%s", tp.harness.View())
	}
}

func TestEscQuitsWithoutSelection(t *testing.T) {
	tp := newTestHarness(t, Options{}, picker.Config{}, 3)
	tp.harness.SendKeys("esc")
	if !tp.harness.Quit() || len(tp.selected) != 0 {
		t.Fatalf("expected quit without selection, quit=%v selected=%v", tp.harness.Quit(), tp.selected)
	}
}

func TestFooterListsActiveBindings(t *testing.T) {
	tp := newTestHarness(t, Options{ShowFooter: true, Width: 200}, picker.Config{}, 3)
	view := tp.harness.View()
	if !strings.Contains(view, "down to list") || !strings.Contains(view, "esc quit") {
		t.Fatalf("expected input and root help, view =\n%s", view)
	}
	if strings.Contains(view, "enter select") {
		t.Fatalf("expected list help hidden while input is focused, view =\n%s", view)
	}
	tp.harness.SendKeys("tab")
	if !strings.Contains(tp.harness.View(), "enter select") {
		t.Fatalf("expected list help once focused, view =\n%s", tp.harness.View())
	}
}

func TestReloadWithoutWatcher(t *testing.T) {
	tp := newTestHarness(t, Options{}, picker.Config{}, 1)
	tp.harness.SendKeys("ctrl+r")
	if !strings.Contains(tp.harness.View(), "Source cannot be reloaded") {
		t.Fatalf("expected reload notice, view =\n%s", tp.harness.View())
	}
}

func TestBackendEventsReplaceCandidates(t *testing.T) {
	tp := newTestHarness(t, Options{}, picker.Config{}, 2)
	tp.harness.Send(backendEventMsg{event: backend.Event{Source: "demo", Err: errors.New("offline")}})
	view := tp.harness.View()
	if !strings.Contains(view, "Error: reload demo: offline") || !strings.Contains(view, "item-01") {
		t.Fatalf("expected error with existing items kept, view =\n%s", view)
	}

	tp.harness.Send(backendEventMsg{event: backend.Event{Source: "demo", Items: []menu.Item{{ID: "fresh", Label: "fresh"}}}})
	view = tp.harness.View()
	if strings.Contains(view, "Error:") || strings.Contains(view, "item-01") || !strings.Contains(view, "fresh") {
		t.Fatalf("expected reloaded items, view =\n%s", view)
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	tp := newTestHarness(t, Options{Width: 30}, picker.Config{}, 1)
	tp.harness.Send(tea.WindowSizeMsg{Width: 100, Height: 12})
	m := tp.harness.Model()
	if m.width != 30 || m.height != 12 {
		t.Fatalf("expected fixed width and resized height, got %dx%d", m.width, m.height)
	}
}

func TestLongLabelsAreTruncated(t *testing.T) {
	p, err := picker.New(picker.Config{WindowSize: 3}, nil, nil)
	if err != nil {
		t.Fatalf("new picker: %v", err)
	}
	p.SetCandidates([]menu.Item{{ID: "x", Label: strings.Repeat("x", 50), Icon: "◆"}})
	h := NewHarness(NewModel(Options{Width: 20}, p, nil))
	for _, line := range strings.Split(h.View(), "\n") {
		if w := len([]rune(line)); w > 20 {
			t.Fatalf("expected lines at most 20 cells, got %d: %q", w, line)
		}
	}
	if !strings.Contains(h.View(), "◆ xxx") {
		t.Fatalf("expected icon before label, view =\n%s", h.View())
	}
}

func TestShortViewportKeepsCursorRowVisible(t *testing.T) {
	tp := newTestHarness(t, Options{Width: 40, Height: 8}, picker.Config{WindowSize: 16}, 20)
	tp.harness.SendKeys("tab")
	for i := 0; i < 10; i++ {
		tp.harness.SendKeys("j")
	}
	view := tp.harness.View()
	if lines := strings.Split(view, "\n"); len(lines) > 8 {
		t.Fatalf("expected at most 8 lines, got %d:\n%s", len(lines), view)
	}
	if !strings.Contains(view, "item-10") {
		t.Fatalf("expected cursor row item-10, view =\n%s", view)
	}
	// 8 rows minus header, status and prompt leaves a 5 row window.
	if !strings.Contains(view, "item-06") || strings.Contains(view, "item-05") || strings.Contains(view, "item-11") {
		t.Fatalf("expected rows item-06..item-10, view =\n%s", view)
	}
	if strings.Contains(view, ellipsis) {
		t.Fatalf("expected no trimmed rows, view =\n%s", view)
	}
}

func TestResizeRefitsWindowAroundCursor(t *testing.T) {
	tp := newTestHarness(t, Options{Width: 200, ShowFooter: true}, picker.Config{WindowSize: 16}, 20)
	tp.harness.SendKeys("tab", "end")

	// footer takes 2 more rows: 10 - 3 - 2 = 5
	tp.harness.Send(tea.WindowSizeMsg{Width: 200, Height: 10})
	view := tp.harness.View()
	if !strings.Contains(view, "item-19") || !strings.Contains(view, "item-15") || strings.Contains(view, "item-14") {
		t.Fatalf("expected rows item-15..item-19, view =\n%s", view)
	}
	if !strings.Contains(view, "esc quit") {
		t.Fatalf("expected footer to stay visible, view =\n%s", view)
	}

	tp.harness.Send(tea.WindowSizeMsg{Width: 200, Height: 60})
	view = tp.harness.View()
	if !strings.Contains(view, "item-04") || strings.Contains(view, "item-03") {
		t.Fatalf("expected the configured 16 row window, view =\n%s", view)
	}
}

func TestInfoSharesStatusLine(t *testing.T) {
	tp := newTestHarness(t, Options{Width: 40, Height: 8, KeepOpen: true}, picker.Config{WindowSize: 16}, 20)
	tp.harness.SendKeys("tab", "enter")
	view := tp.harness.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), view)
	}
	if !strings.Contains(lines[6], "Selected item-00") {
		t.Fatalf("expected info on the status line, view =\n%s", view)
	}
	if !strings.Contains(view, "item-04") {
		t.Fatalf("expected info to leave rows in place, view =\n%s", view)
	}
}

func TestIconAndFooterKeyStyles(t *testing.T) {
	orig := *styles
	t.Cleanup(func() { *styles = orig })
	icon := lipgloss.NewStyle().Transform(func(s string) string { return "<" + s + ">" })
	footerKey := lipgloss.NewStyle().Transform(func(s string) string { return "[" + s + "]" })
	styles.Icon = &icon
	styles.FooterKey = &footerKey

	p, err := picker.New(picker.Config{WindowSize: 3}, nil, nil)
	if err != nil {
		t.Fatalf("new picker: %v", err)
	}
	p.SetCandidates([]menu.Item{{ID: "a", Label: "alpha", Icon: "◆"}})
	h := NewHarness(NewModel(Options{Width: 120, ShowFooter: true}, p, nil))
	view := h.View()
	if !strings.Contains(view, "▌ <◆> alpha") {
		t.Fatalf("expected styled icon before label, view =\n%s", view)
	}
	if !strings.Contains(view, "[esc] quit") {
		t.Fatalf("expected styled footer keys, view =\n%s", view)
	}
}
