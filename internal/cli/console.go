// internal/cli/console.go
package ollabench

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/ollabench/internal/benchmark"
	"github.com/mwiater/ollabench/internal/ollama"
)

var (
	successfulResult = color.New(color.FgGreen).SprintFunc()
	failedResult     = color.New(color.FgRed).SprintFunc()
	timeoutResult    = color.New(color.FgYellow).SprintFunc()
)

// consoleObserver prints one colored status line per model event.
type consoleObserver struct {
	out io.Writer
}

func (c consoleObserver) ModelStarted(index, total int, model string) {
	fmt.Fprintf(c.out, "==> [%d/%d] %s\n", index, total, model)
}

func (c consoleObserver) ModelSkipped(model string, err error) {
	if errors.Is(err, ollama.ErrTimeout) {
		fmt.Fprintf(c.out, "    %s\n", timeoutResult(fmt.Sprintf("%s timed out, skipping", model)))
		return
	}
	fmt.Fprintf(c.out, "    %s\n", failedResult(fmt.Sprintf("%s skipped: %v", model, err)))
}

func (c consoleObserver) ModelCompleted(rec benchmark.Record) {
	fmt.Fprintf(c.out, "    %s\n", successfulResult(fmt.Sprintf("%.2f tokens/s, score %.2f, tier %s", rec.TokenRate, rec.Score, rec.Tier)))
}
