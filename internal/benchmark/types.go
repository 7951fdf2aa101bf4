// internal/benchmark/types.go
package benchmark

import (
	"time"

	"github.com/mwiater/ollabench/internal/metrics"
)

// Request is the inference request issued for one model.
type Request struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Timeout time.Duration `json:"timeout"`
}

// Record holds the derived measurements for one model that answered
// successfully within its timeout.
type Record struct {
	ModelName   string       `json:"modelName"`
	Tokens      int          `json:"tokens"`
	EvalSeconds float64      `json:"evalSeconds"`
	LoadSeconds float64      `json:"loadSeconds"`
	TokenRate   float64      `json:"tokenRate"`
	Score       float64      `json:"score"`
	GPU         bool         `json:"gpu"`
	Tier        metrics.Tier `json:"tier"`
}

// RunResult lists the records of a run in model discovery order. Models
// that failed are absent rather than marked.
type RunResult struct {
	Records []Record `json:"records"`
}

// ModelNames returns the model names of the records in order.
func (r RunResult) ModelNames() []string {
	names := make([]string, len(r.Records))
	for i, rec := range r.Records {
		names[i] = rec.ModelName
	}
	return names
}

// TokenRates returns the token rates of the records in order.
func (r RunResult) TokenRates() []float64 {
	rates := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		rates[i] = rec.TokenRate
	}
	return rates
}

// Metadata describes the environment a run executed in.
type Metadata struct {
	Prompt        string    `json:"prompt"`
	Timestamp     time.Time `json:"timestamp"`
	EngineHost    string    `json:"engineHost"`
	System        string    `json:"system"`
	GPU           string    `json:"gpu"`
	EngineVersion string    `json:"engineVersion"`
}

// State is the lifecycle position of a Runner.
type State int

const (
	StateIdle State = iota
	StateDiscovering
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
