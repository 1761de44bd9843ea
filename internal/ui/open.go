package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

// OpenURLFunc launches url in the desktop browser. Tests replace it.
var OpenURLFunc = openURL

func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return cmd.Process.Release()
}

// OpenURL returns a command that opens url outside the terminal and
// reports the outcome on the status bar.
func OpenURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := OpenURLFunc(url); err != nil {
			return StatusMsg("could not open browser: " + url)
		}
		return StatusMsg("opened " + url)
	}
}
