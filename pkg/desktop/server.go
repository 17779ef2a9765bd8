package desktop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shiro123444/sideload/pkg/fsutil"
)

// serverKeywords are matched case-insensitively against the probe output.
var serverKeywords = []string{"server", "serve", "daemon", "start", "stop"}

// terminalEmulators is the fixed preference order for launching server
// apps, with the argument each terminal needs before the command.
var terminalEmulators = []struct {
	command string
	args    []string
}{
	{"xdg-terminal-exec", nil},
	{"ptyxis", []string{"--"}},
	{"kgx", []string{"--"}},
	{"gnome-terminal", []string{"--"}},
	{"konsole", []string{"-e"}},
	{"xfce4-terminal", []string{"-e"}},
	{"xterm", []string{"-e"}},
}

// DetectServer probes the executable with --help and scans the combined
// output for server vocabulary. The probe is bounded by the builder's
// timeout; any failure to run the probe (timeout, exec error) counts as
// "not a server". A non-zero exit with output is still scanned, since many
// CLIs print usage to stderr and exit 1.
func (b *Builder) DetectServer(ctx context.Context, execPath string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, b.ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, execPath, "--help")
	out, err := cmd.CombinedOutput()
	if probeCtx.Err() != nil {
		return false
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return false
	}

	helpText := strings.ToLower(string(out))
	for _, keyword := range serverKeywords {
		if strings.Contains(helpText, keyword) {
			return true
		}
	}
	return false
}

// writeLauncher generates the terminal launcher script for a server app:
// it announces the start, execs the binary with the server argument and
// waits for a keypress before the terminal closes.
func (b *Builder) writeLauncher(name, appID, execPath string) (string, error) {
	launcherPath := b.Layout.LauncherPath(appID)
	script := fmt.Sprintf(`#!/bin/bash
# %s launcher
echo "Starting %s server..."
echo "================================"
%q server
echo ""
echo "================================"
echo "Server stopped, press any key to close..."
read -n 1
`, name, name, execPath)

	if err := os.WriteFile(launcherPath, []byte(script), fsutil.FileModeExec); err != nil {
		return "", fmt.Errorf("failed to write launcher script: %w", err)
	}
	return launcherPath, nil
}

// findTerminal returns the first available terminal emulator from the
// preference list.
func findTerminal() (string, []string, bool) {
	for _, term := range terminalEmulators {
		if _, err := exec.LookPath(term.command); err == nil {
			return term.command, term.args, true
		}
	}
	return "", nil, false
}
