package tmux

import (
	"errors"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type fakeClient struct {
	sessions       []*gotmux.Session
	sessionsErr    error
	clients        []*gotmux.Client
	display        map[string]string
	switchErr      error
	switchCalls    int
	lastSwitchOpts *gotmux.SwitchClientOptions
	closed         bool
}

func (f *fakeClient) ListSessions() ([]*gotmux.Session, error) {
	return f.sessions, f.sessionsErr
}

func (f *fakeClient) ListClients() ([]*gotmux.Client, error) {
	return f.clients, nil
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	if v, ok := f.display[format]; ok {
		return v, nil
	}
	return "", errors.New("no such format")
}

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	f.switchCalls++
	f.lastSwitchOpts = opts
	return f.switchErr
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func withStubTmux(t *testing.T, client *fakeClient, err error) {
	t.Helper()
	prev := newTmux
	newTmux = func(string) (tmuxClient, error) {
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	t.Cleanup(func() { newTmux = prev })
}

func TestFetchSessionsSortsAndMarksCurrent(t *testing.T) {
	t.Setenv("TMUX_PANE", "%1")
	client := &fakeClient{
		sessions: []*gotmux.Session{
			{Name: "work", Windows: 3, Attached: 1, AttachedList: []string{"/dev/pts/1"}},
			{Name: "dev", Windows: 1},
			nil,
		},
		display: map[string]string{"#{session_name}": "work\n"},
	}
	withStubTmux(t, client, nil)

	snap, err := FetchSessions("/tmp/sock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(snap.Sessions))
	}
	if snap.Sessions[0].Name != "dev" || snap.Sessions[1].Name != "work" {
		t.Fatalf("expected sessions sorted by name, got %#v", snap.Sessions)
	}
	if !snap.Sessions[1].Attached || snap.Sessions[1].Windows != 3 || len(snap.Sessions[1].Clients) != 1 {
		t.Fatalf("expected work session details, got %#v", snap.Sessions[1])
	}
	if !snap.Sessions[1].Current || snap.Sessions[0].Current {
		t.Fatalf("expected work to be current, got %#v", snap)
	}
	if !client.closed {
		t.Fatalf("expected client to be closed")
	}
}

func TestFetchSessionsPropagatesErrors(t *testing.T) {
	withStubTmux(t, nil, errors.New("no server"))
	if _, err := FetchSessions(""); err == nil {
		t.Fatalf("expected connect error")
	}

	withStubTmux(t, &fakeClient{sessionsErr: errors.New("boom")}, nil)
	if _, err := FetchSessions(""); err == nil {
		t.Fatalf("expected list error")
	}
}

func TestSwitchClientTargetsLaunchingClient(t *testing.T) {
	t.Setenv("TMUX_PANE", "%3")
	client := &fakeClient{display: map[string]string{"#{client_name}": "/dev/pts/4"}}
	withStubTmux(t, client, nil)

	if err := SwitchClient("", " dev "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.switchCalls != 1 {
		t.Fatalf("expected one switch, got %d", client.switchCalls)
	}
	if client.lastSwitchOpts.TargetSession != "dev" {
		t.Fatalf("expected target dev, got %q", client.lastSwitchOpts.TargetSession)
	}
	if client.lastSwitchOpts.TargetClient != "/dev/pts/4" {
		t.Fatalf("expected target client, got %q", client.lastSwitchOpts.TargetClient)
	}
}

func TestSwitchClientRejectsEmptyTarget(t *testing.T) {
	client := &fakeClient{}
	withStubTmux(t, client, nil)
	if err := SwitchClient("", "  "); err == nil {
		t.Fatalf("expected error for empty target")
	}
	if client.switchCalls != 0 {
		t.Fatalf("expected no switch calls")
	}
}

func TestResolveSocketPathPrefersFlagThenEnv(t *testing.T) {
	got, err := ResolveSocketPath("/explicit")
	if err != nil || got != "/explicit" {
		t.Fatalf("expected explicit socket, got %q (%v)", got, err)
	}
	t.Setenv("TMUX", "/tmp/tmux-1000/work,123,0")
	got, err = ResolveSocketPath("")
	if err != nil || got != "/tmp/tmux-1000/work" {
		t.Fatalf("expected socket from $TMUX, got %q (%v)", got, err)
	}
}
