package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// FetchSessions lists the sessions on the server behind socketPath.
func FetchSessions(socketPath string) (SessionSnapshot, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	sessions, err := client.ListSessions()
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("list sessions: %w", err)
	}
	currentName := currentSessionName(client)
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || s.Name == "" {
			continue
		}
		out = append(out, Session{
			Name:     s.Name,
			Attached: s.Attached > 0,
			Clients:  append([]string(nil), s.AttachedList...),
			Current:  s.Name == currentName,
			Windows:  s.Windows,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return SessionSnapshot{Sessions: out}, nil
}

// SwitchClient points the launching client (or the most recent one when it
// cannot be detected) at the target session.
func SwitchClient(socketPath, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("session target required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	opts := &gotmux.SwitchClientOptions{TargetSession: target}
	if id := currentClientName(client); id != "" {
		opts.TargetClient = id
	}
	if err := client.SwitchClient(opts); err != nil {
		return fmt.Errorf("switch to %s: %w", target, err)
	}
	return nil
}

// ResolveSocketPath returns the socket to talk to, preferring the explicit
// value, then $TMUX, then the per-user default.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func currentSessionName(client tmuxClient) string {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && !c.ControlMode && c.Session != "" {
				return c.Session
			}
		}
	}
	return ""
}

// currentClientName detects the client that launched the popup so the switch
// targets the visible client rather than the control-mode connection.
func currentClientName(client tmuxClient) string {
	pane := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if pane == "" {
		return ""
	}
	name, err := client.DisplayMessage(pane, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
