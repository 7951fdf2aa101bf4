// internal/gpu/gpu.go
// Package gpu inspects NVIDIA GPU state through nvidia-smi. Every lookup is
// best effort: a missing tool or a failing invocation degrades to a default
// value instead of an error.
package gpu

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single nvidia-smi invocation.
	DefaultTimeout = 5 * time.Second

	nvidiaSMI = "nvidia-smi"

	noGPUDetected   = "no NVIDIA GPU detected"
	smiNotInstalled = "nvidia-smi not installed"
)

// DefaultMarkers are the process-name fragments that count as the inference
// engine holding the GPU. "python" covers engines embedded in an interpreter,
// which makes the match approximate.
var DefaultMarkers = []string{"ollama", "python"}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local host.
type ExecRunner struct{}

// Run executes name with args and returns stdout. A non-zero exit is
// reported as an *exec.ExitError.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Correlator reports whether an accelerated inference process is visible
// on the GPU at the moment it is asked.
type Correlator struct {
	runner  CommandRunner
	timeout time.Duration
	markers []string
}

// Option configures a Correlator.
type Option func(*Correlator)

// WithRunner replaces the command runner, mainly for tests.
func WithRunner(r CommandRunner) Option {
	return func(c *Correlator) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithTimeout sets the per-invocation timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Correlator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMarkers overrides the process-name fragments that count as a match.
func WithMarkers(markers ...string) Option {
	return func(c *Correlator) {
		if len(markers) > 0 {
			c.markers = markers
		}
	}
}

// NewCorrelator returns a Correlator backed by nvidia-smi.
func NewCorrelator(opts ...Option) *Correlator {
	c := &Correlator{
		runner:  ExecRunner{},
		timeout: DefaultTimeout,
		markers: DefaultMarkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAccelerated lists GPU compute processes and reports whether any of them
// matches a marker. The result is a snapshot of whatever runs at call time,
// not proof that a specific request used the GPU. Failures yield false.
func (c *Correlator) IsAccelerated(ctx context.Context) bool {
	out, err := c.run(ctx, "--query-compute-apps=pid,process_name", "--format=csv,noheader")
	if err != nil {
		return false
	}
	listing := strings.ToLower(strings.TrimSpace(string(out)))
	for _, marker := range c.markers {
		if marker != "" && strings.Contains(listing, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// Describe returns the first GPU's name, memory, and driver version as
// reported by nvidia-smi, or a placeholder when none can be read.
func (c *Correlator) Describe(ctx context.Context) string {
	out, err := c.run(ctx, "--query-gpu=name,memory.total,driver_version", "--format=csv,noheader")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return smiNotInstalled
		}
		return noGPUDetected
	}
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0])
	if line == "" {
		return noGPUDetected
	}
	return line
}

func (c *Correlator) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.runner.Run(ctx, nvidiaSMI, args...)
}
