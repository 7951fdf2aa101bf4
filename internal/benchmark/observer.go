package benchmark

import (
	"github.com/mwiater/ollabench/internal/logging"
)

// Observer receives progress events from a Runner. Calls arrive on the
// runner's goroutine, in model order.
type Observer interface {
	ModelStarted(index, total int, model string)
	ModelSkipped(model string, err error)
	ModelCompleted(rec Record)
}

// LogObserver writes progress events to the process log.
type LogObserver struct{}

func (LogObserver) ModelStarted(index, total int, model string) {
	logging.LogEvent("==> Benchmark %d/%d running for model: %s", index, total, model)
}

func (LogObserver) ModelSkipped(model string, err error) {
	logging.LogEvent("Skipping model %s: %v", model, err)
}

func (LogObserver) ModelCompleted(rec Record) {
	logging.LogEvent("Model %s complete: %d tokens, eval %.2fs, load %.2fs, %.2f tokens/s, score %.2f, gpu=%v, tier=%s",
		rec.ModelName, rec.Tokens, rec.EvalSeconds, rec.LoadSeconds, rec.TokenRate, rec.Score, rec.GPU, rec.Tier)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) ModelStarted(index, total int, model string) {
	for _, o := range m {
		o.ModelStarted(index, total, model)
	}
}

func (m MultiObserver) ModelSkipped(model string, err error) {
	for _, o := range m {
		o.ModelSkipped(model, err)
	}
}

func (m MultiObserver) ModelCompleted(rec Record) {
	for _, o := range m {
		o.ModelCompleted(rec)
	}
}
