package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserLauncher opens URLs in the default browser (cross-platform).
// It starts the handler and returns without waiting for it.
type BrowserLauncher struct {
	// command builds the handler invocation; nil uses the platform default
	command func(url string) *exec.Cmd
}

// NewBrowserLauncher returns a launcher for the current platform
func NewBrowserLauncher() *BrowserLauncher {
	return &BrowserLauncher{}
}

// Open implements header.Launcher
func (l *BrowserLauncher) Open(url string) error {
	build := l.command
	if build == nil {
		build = browserCommand
	}
	cmd := build(url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	// Reap the child so it does not linger as a zombie
	go cmd.Wait()
	return nil
}

func browserCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", url)
	case "darwin":
		return exec.Command("open", url)
	default: // linux, freebsd, etc.
		return exec.Command("xdg-open", url)
	}
}
