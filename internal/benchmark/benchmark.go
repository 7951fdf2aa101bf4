// internal/benchmark/benchmark.go
// Package benchmark runs the sequential per-model benchmark loop and turns
// raw inference counters into report records.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/ollabench/internal/metrics"
	"github.com/mwiater/ollabench/internal/ollama"
)

// ErrNoModels aborts a run whose model discovery returned nothing.
var ErrNoModels = errors.New("no models installed")

// InferenceClient is the part of the Ollama API a run needs.
type InferenceClient interface {
	ListModels(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, model, prompt string, timeout time.Duration) (ollama.GenerateResult, error)
}

// Accelerator reports whether the inference engine is visible on the GPU.
type Accelerator interface {
	IsAccelerated(ctx context.Context) bool
}

type noAccelerator struct{}

func (noAccelerator) IsAccelerated(context.Context) bool { return false }

// Runner benchmarks every installed model once, one model at a time.
// Models share the accelerator, so running them concurrently would skew
// each other's throughput.
type Runner struct {
	client     InferenceClient
	gpu        Accelerator
	normalizer metrics.DurationNormalizer
	observer   Observer

	state   State
	records []Record
}

// Option configures a Runner.
type Option func(*Runner)

// WithAccelerator sets the GPU correlator consulted after each call.
func WithAccelerator(a Accelerator) Option {
	return func(r *Runner) {
		if a != nil {
			r.gpu = a
		}
	}
}

// WithNormalizer replaces the duration normalizer.
func WithNormalizer(n metrics.DurationNormalizer) Option {
	return func(r *Runner) {
		if n != nil {
			r.normalizer = n
		}
	}
}

// WithObserver sets the receiver of per-model progress events.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRunner returns an idle Runner that uses client for discovery and inference.
func NewRunner(client InferenceClient, opts ...Option) *Runner {
	r := &Runner{
		client:     client,
		gpu:        noAccelerator{},
		normalizer: metrics.HeuristicNormalizer{},
		observer:   LogObserver{},
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run discovers the installed models and benchmarks each with prompt,
// allowing timeout per request. Per-model failures are skipped. The
// returned error is non-nil only when discovery fails or finds nothing
// (the run is aborted) or when ctx is cancelled between models, in which
// case the records gathered so far are returned as well.
func (r *Runner) Run(ctx context.Context, prompt string, timeout time.Duration) (RunResult, error) {
	r.records = nil
	r.state = StateDiscovering

	models, err := r.client.ListModels(ctx)
	if err != nil {
		r.state = StateAborted
		return RunResult{}, fmt.Errorf("discover models: %w", err)
	}
	if len(models) == 0 {
		r.state = StateAborted
		return RunResult{}, ErrNoModels
	}

	r.state = StateRunning
	r.records = make([]Record, 0, len(models))
	for i, model := range models {
		if err := ctx.Err(); err != nil {
			r.state = StateAborted
			return r.result(), err
		}

		r.observer.ModelStarted(i+1, len(models), model)
		rec, err := r.benchmarkModel(ctx, Request{Model: model, Prompt: prompt, Timeout: timeout})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				r.state = StateAborted
				return r.result(), ctxErr
			}
			r.observer.ModelSkipped(model, err)
			continue
		}
		r.records = append(r.records, rec)
		r.observer.ModelCompleted(rec)
	}

	r.state = StateCompleted
	return r.result(), nil
}

// benchmarkModel issues one inference call and derives its record.
func (r *Runner) benchmarkModel(ctx context.Context, req Request) (Record, error) {
	raw, err := r.client.Generate(ctx, req.Model, req.Prompt, req.Timeout)
	if err != nil {
		return Record{}, err
	}

	gpuInUse := r.gpu.IsAccelerated(ctx)

	evalSeconds := r.normalizer.Normalize(raw.EvalDuration)
	loadSeconds := r.normalizer.Normalize(raw.LoadDuration)
	tp := metrics.Compute(raw.EvalCount, evalSeconds)

	return Record{
		ModelName:   req.Model,
		Tokens:      raw.EvalCount,
		EvalSeconds: evalSeconds,
		LoadSeconds: loadSeconds,
		TokenRate:   tp.TokenRate,
		Score:       tp.Score,
		GPU:         gpuInUse,
		Tier:        metrics.Classify(tp.TokenRate),
	}, nil
}

func (r *Runner) result() RunResult {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return RunResult{Records: out}
}
