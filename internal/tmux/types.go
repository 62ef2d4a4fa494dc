package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Session is a tmux session as offered by the session source.
type Session struct {
	Name     string
	Attached bool
	Clients  []string
	Current  bool
	Windows  int
}

// SessionSnapshot captures the session list at one point in time.
type SessionSnapshot struct {
	Sessions []Session
}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListClients() ([]*gotmux.Client, error)
	DisplayMessage(target, format string) (string, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}
