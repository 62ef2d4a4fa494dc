package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/picker"
	"github.com/atomicstack/popup-picker/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the presentation of the picker.
type Options struct {
	Title      string
	Width      int
	Height     int
	ShowFooter bool
	// KeepOpen keeps the program running after a selection.
	KeepOpen bool
}

// Model implements the Bubble Tea model around a picker.Picker.
type Model struct {
	picker  *picker.Picker
	backend *backend.Watcher

	title       string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	keepOpen    bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	quitting   bool

	filterCursor      cursor.Model
	filterCursorDirty bool
	filterFocused     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps p for the Bubble Tea runtime. watcher may be nil.
func NewModel(opts Options, p *picker.Picker, watcher *backend.Watcher) *Model {
	m := &Model{
		picker:     p,
		backend:    watcher,
		title:      strings.TrimSpace(opts.Title),
		showFooter: opts.ShowFooter,
		keepOpen:   opts.KeepOpen,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	m.fitWindow()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.filterFocused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
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

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		if m.filterFocused {
			m.filterCursor.Blink = false
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.fitWindow()
	return nil
}

// fitWindow shrinks the list window to the rows left over once the header,
// footer, status line and prompt are drawn.
func (m *Model) fitWindow() {
	if m.picker == nil {
		return
	}
	if m.height <= 0 {
		m.picker.FitRows(0)
		return
	}
	rows := m.height - chromeRows
	if m.showFooter {
		rows -= footerRows
	}
	m.picker.FitRows(max(rows, 1))
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
