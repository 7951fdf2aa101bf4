package gpu

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

type fakeRunner struct {
	out   string
	err   error
	calls [][]string
	block bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte(f.out), f.err
}

func TestIsAcceleratedMatchesEngineProcess(t *testing.T) {
	runner := &fakeRunner{out: "1234, /usr/local/bin/Ollama\n"}
	c := NewCorrelator(WithRunner(runner))
	if !c.IsAccelerated(context.Background()) {
		t.Fatalf("expected ollama process to count as accelerated")
	}
	if len(runner.calls) != 1 || runner.calls[0][0] != "nvidia-smi" {
		t.Fatalf("unexpected invocation: %v", runner.calls)
	}
	if !strings.Contains(strings.Join(runner.calls[0], " "), "--query-compute-apps=pid,process_name") {
		t.Fatalf("expected compute-apps query, got %v", runner.calls[0])
	}
}

func TestIsAcceleratedMatchesInterpreter(t *testing.T) {
	c := NewCorrelator(WithRunner(&fakeRunner{out: "99, python3\n"}))
	if !c.IsAccelerated(context.Background()) {
		t.Fatalf("expected python process to count as accelerated")
	}
}

func TestIsAcceleratedNoMatch(t *testing.T) {
	c := NewCorrelator(WithRunner(&fakeRunner{out: "42, Xorg\n"}))
	if c.IsAccelerated(context.Background()) {
		t.Fatalf("expected no match for unrelated process")
	}
	c = NewCorrelator(WithRunner(&fakeRunner{out: ""}))
	if c.IsAccelerated(context.Background()) {
		t.Fatalf("expected no match for empty listing")
	}
}

func TestIsAcceleratedToolErrorIsFalse(t *testing.T) {
	c := NewCorrelator(WithRunner(&fakeRunner{out: "1, ollama", err: errors.New("exit status 9")}))
	if c.IsAccelerated(context.Background()) {
		t.Fatalf("expected false when nvidia-smi fails")
	}
	c = NewCorrelator(WithRunner(&fakeRunner{err: &exec.Error{Name: "nvidia-smi", Err: exec.ErrNotFound}}))
	if c.IsAccelerated(context.Background()) {
		t.Fatalf("expected false when nvidia-smi is missing")
	}
}

func TestIsAcceleratedTimesOut(t *testing.T) {
	c := NewCorrelator(WithRunner(&fakeRunner{block: true}), WithTimeout(10*time.Millisecond))
	done := make(chan bool, 1)
	go func() { done <- c.IsAccelerated(context.Background()) }()
	select {
	case got := <-done:
		if got {
			t.Fatalf("expected false on timeout")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("IsAccelerated did not honor its timeout")
	}
}

func TestWithMarkers(t *testing.T) {
	c := NewCorrelator(WithRunner(&fakeRunner{out: "7, llama-server"}), WithMarkers("LLAMA-SERVER"))
	if !c.IsAccelerated(context.Background()) {
		t.Fatalf("expected custom marker to match case-insensitively")
	}
}

func TestDescribe(t *testing.T) {
	c := NewCorrelator(WithRunner(&fakeRunner{out: "NVIDIA GeForce RTX 4090, 24564 MiB, 550.54\nNVIDIA T4, 15360 MiB, 550.54\n"}))
	if got := c.Describe(context.Background()); got != "NVIDIA GeForce RTX 4090, 24564 MiB, 550.54" {
		t.Fatalf("Describe = %q", got)
	}

	c = NewCorrelator(WithRunner(&fakeRunner{err: errors.New("exit status 6")}))
	if got := c.Describe(context.Background()); got != noGPUDetected {
		t.Fatalf("Describe on failure = %q", got)
	}

	c = NewCorrelator(WithRunner(&fakeRunner{err: &exec.Error{Name: "nvidia-smi", Err: exec.ErrNotFound}}))
	if got := c.Describe(context.Background()); got != smiNotInstalled {
		t.Fatalf("Describe without tool = %q", got)
	}
}
