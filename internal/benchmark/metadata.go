package benchmark

import (
	"context"
	"time"

	"github.com/mwiater/ollabench/internal/gpu"
	"github.com/mwiater/ollabench/internal/sysinfo"
)

// GPUDescriber returns a one-line description of the installed GPU.
type GPUDescriber interface {
	Describe(ctx context.Context) string
}

// CollectMetadata gathers the report header for a run. Every lookup is best
// effort and never fails the run.
func CollectMetadata(ctx context.Context, prompt, engineHost string, describer GPUDescriber, runner gpu.CommandRunner, now time.Time) Metadata {
	gpuInfo := "unknown"
	if describer != nil {
		gpuInfo = describer.Describe(ctx)
	}
	return Metadata{
		Prompt:        prompt,
		Timestamp:     now,
		EngineHost:    engineHost,
		System:        sysinfo.DescribeHost().String(),
		GPU:           gpuInfo,
		EngineVersion: sysinfo.EngineVersion(ctx, runner),
	}
}
