// Package sysinfo collects best-effort host details for report metadata.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/mwiater/ollabench/internal/gpu"
)

const (
	versionNotDetected = "version not detected"
	engineNotFound     = "ollama not found"

	defaultTimeout = 5 * time.Second
)

// Host describes the machine the benchmark runs on.
type Host struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	CPUs     int    `json:"cpus"`
	Runtime  string `json:"runtime"`
}

// String renders the host as a single line for reports.
func (h Host) String() string {
	return fmt.Sprintf("%s/%s, %d CPUs (%s)", h.OS, h.Arch, h.CPUs, h.Hostname)
}

// DescribeHost reads the local OS, architecture, CPU count, and hostname.
func DescribeHost() Host {
	name, err := os.Hostname()
	if err != nil || strings.TrimSpace(name) == "" {
		name = "unknown"
	}
	return Host{
		Hostname: name,
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUs:     runtime.NumCPU(),
		Runtime:  runtime.Version(),
	}
}

// EngineVersion runs "ollama --version" and returns its trimmed output. A
// missing binary or failed invocation yields a placeholder string.
func EngineVersion(ctx context.Context, runner gpu.CommandRunner) string {
	if runner == nil {
		runner = gpu.ExecRunner{}
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := runner.Run(ctx, "ollama", "--version")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return engineNotFound
		}
		return versionNotDetected
	}
	version := strings.TrimSpace(string(out))
	if version == "" {
		return versionNotDetected
	}
	return version
}
