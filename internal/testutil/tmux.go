package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ServerSession is the session every test server starts with.
const ServerSession = "popup-picker-test"

var ErrPaneUnavailable = errors.New("tmux pane unavailable")

// RequireTmux skips the calling test when tmux is not present on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartTmuxServer boots a throwaway tmux server on its own socket and
// registers its shutdown with t.Cleanup.
func StartTmuxServer(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	baseDir, err := os.MkdirTemp("/tmp", "popup-picker-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	socketPath := filepath.Join(baseDir, "tmux-test.sock")
	if err := Tmux(socketPath, "-f", "/dev/null", "new-session", "-d", "-s", ServerSession, "sleep", "600").Run(); err != nil {
		_ = os.RemoveAll(baseDir)
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := killServer(ctx, socketPath); err != nil {
			t.Logf("control-mode kill failed for socket %s: %v; falling back to tmux kill-server", socketPath, err)
			_ = Tmux(socketPath, "kill-server").Run()
		}
		_ = os.RemoveAll(baseDir)
	})
	return socketPath
}

// CapturePane returns the plain-text contents of a tmux pane.
func CapturePane(t *testing.T, socketPath, target string) (string, error) {
	t.Helper()
	args := []string{"capture-pane", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	output, err := Tmux(socketPath, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrPaneUnavailable
		}
		return "", fmt.Errorf("capture-pane failed: %w", err)
	}
	return string(output), nil
}

// WaitForPane polls target until its contents include want.
func WaitForPane(t *testing.T, ctx context.Context, socketPath, target, want string) string {
	t.Helper()
	var last string
	for {
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for %q in pane %s: %v\nlast capture:\n%s", want, target, ctx.Err(), last)
			return ""
		case <-time.After(50 * time.Millisecond):
			out, err := CapturePane(t, socketPath, target)
			if errors.Is(err, ErrPaneUnavailable) {
				continue
			}
			if err != nil {
				t.Fatalf("capture-pane error: %v", err)
			}
			last = out
			if strings.Contains(out, want) {
				return out
			}
		}
	}
}

// Tmux builds a tmux command against socket, detached from any tmux the
// test itself runs under.
func Tmux(socket string, extra ...string) *exec.Cmd {
	trimmed := strings.TrimSpace(socket)
	args := make([]string, 0, len(extra)+2)
	if trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	cmd := exec.Command("tmux", args...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TMUX=")
	if trimmed != "" {
		env = append(env, "TMUX_TMPDIR="+filepath.Dir(trimmed))
	}
	cmd.Env = env
	return cmd
}

func killServer(ctx context.Context, socket string) error {
	if strings.TrimSpace(socket) == "" {
		return errors.New("empty tmux socket path")
	}
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
