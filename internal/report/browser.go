package report

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// startCommand launches cmd without waiting for it. Tests replace it.
var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// Open opens the report at path in the desktop's default application.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve report path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, abs)
	case "darwin":
		cmd = exec.Command("open", abs)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", abs)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return startCommand(cmd)
}
