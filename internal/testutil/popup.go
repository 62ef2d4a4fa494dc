package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// BuildPicker compiles the popup-picker binary into a temp dir.
func BuildPicker(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "popup-picker")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = repoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(dir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// LaunchPicker runs bin with args in a new 80x24 session. Stdout goes to
// the returned results file; the exit code is written beside it once the
// process ends. A non-empty stdin is piped into the process.
func LaunchPicker(t *testing.T, socket, session, bin, stdin string, args ...string) (resultsPath, exitPath string) {
	t.Helper()
	dir := t.TempDir()
	resultsPath = filepath.Join(dir, "results")
	exitPath = filepath.Join(dir, "exit-code")
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, "'"+strings.ReplaceAll(a, "'", `'\''`)+"'")
	}
	redirectIn := ""
	if stdin != "" {
		stdinPath := filepath.Join(dir, "stdin")
		if err := os.WriteFile(stdinPath, []byte(stdin), 0o644); err != nil {
			t.Fatalf("failed to write stdin: %v", err)
		}
		redirectIn = " < '" + stdinPath + "'"
	}
	script := "#!/bin/sh\n" +
		"\"$POPUP_BIN\" " + strings.Join(quoted, " ") + redirectIn + " > \"$POPUP_RESULTS\" 2>/dev/null\n" +
		"printf '%s' $? > \"$POPUP_EXIT\"\n" +
		"sleep 300\n"
	scriptPath := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	tmuxArgs := []string{"new-session", "-d", "-x", "80", "-y", "24", "-s", session,
		"-e", "POPUP_BIN=" + bin,
		"-e", "POPUP_RESULTS=" + resultsPath,
		"-e", "POPUP_EXIT=" + exitPath,
		"-e", "POPUP_PICKER_LOG_FILE=" + filepath.Join(dir, "picker.log"),
		scriptPath,
	}
	cmd := Tmux(socket, tmuxArgs...)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	return resultsPath, exitPath
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
