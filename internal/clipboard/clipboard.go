// Package clipboard copies exported documents to the system clipboard, so a
// template can be pasted straight into a scheduling tool.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// tool describes one clipboard command candidate.
type tool struct {
	name string
	args []string
}

// candidates lists the clipboard commands to try for the current OS, in
// preference order.
func candidates() []tool {
	switch runtime.GOOS {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "windows":
		return []tool{{name: "clip"}}
	default:
		return []tool{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "wl-copy"},
		}
	}
}

// Copy writes text to the system clipboard through the first available
// clipboard utility.
func Copy(text string) error {
	var lastErr error
	for _, t := range candidates() {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		cmd := exec.Command(t.name, t.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("%s failed: %w", t.name, err)
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no clipboard utility found for %s (install xclip, xsel or wl-clipboard)", runtime.GOOS)
}

// Available reports whether any clipboard utility can be used.
func Available() bool {
	for _, t := range candidates() {
		if _, err := exec.LookPath(t.name); err == nil {
			return true
		}
	}
	return false
}
