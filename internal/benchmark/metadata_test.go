package benchmark

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubDescriber string

func (s stubDescriber) Describe(context.Context) string { return string(s) }

type failingRunner struct{}

func (failingRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return nil, errors.New("exit status 1")
}

type versionRunner struct{}

func (versionRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return []byte("ollama version is 0.6.2\n"), nil
}

func TestCollectMetadata(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)
	meta := CollectMetadata(context.Background(), "Why is the sky blue?", "http://localhost:11434", stubDescriber("NVIDIA T4, 15360 MiB, 550.54"), versionRunner{}, now)

	if meta.Prompt != "Why is the sky blue?" || !meta.Timestamp.Equal(now) {
		t.Fatalf("unexpected prompt/timestamp %+v", meta)
	}
	if meta.GPU != "NVIDIA T4, 15360 MiB, 550.54" {
		t.Fatalf("GPU = %q", meta.GPU)
	}
	if meta.EngineVersion != "ollama version is 0.6.2" {
		t.Fatalf("EngineVersion = %q", meta.EngineVersion)
	}
	if meta.System == "" || meta.EngineHost != "http://localhost:11434" {
		t.Fatalf("incomplete metadata %+v", meta)
	}
}

func TestCollectMetadataDegrades(t *testing.T) {
	meta := CollectMetadata(context.Background(), "p", "h", nil, failingRunner{}, time.Now())
	if meta.GPU != "unknown" {
		t.Fatalf("GPU = %q", meta.GPU)
	}
	if meta.EngineVersion != "version not detected" {
		t.Fatalf("EngineVersion = %q", meta.EngineVersion)
	}
}
