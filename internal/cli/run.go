// internal/cli/run.go
package ollabench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/ollabench/internal/appconfig"
	"github.com/mwiater/ollabench/internal/benchmark"
	"github.com/mwiater/ollabench/internal/gpu"
	"github.com/mwiater/ollabench/internal/logging"
	"github.com/mwiater/ollabench/internal/ollama"
	"github.com/mwiater/ollabench/internal/progress"
	"github.com/mwiater/ollabench/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	chartWidth  = 72
	chartHeight = 14
)

// gpuProbe is what a run needs from the GPU layer.
type gpuProbe interface {
	IsAccelerated(ctx context.Context) bool
	Describe(ctx context.Context) string
}

// Replaced in tests.
var (
	newGPUProbe = func(timeout time.Duration) gpuProbe {
		return gpu.NewCorrelator(gpu.WithTimeout(timeout))
	}
	commandRunner gpu.CommandRunner = gpu.ExecRunner{}
	openReport                      = report.Open
	now                             = time.Now
)

// runCmd implements 'run', which benchmarks every installed model once and
// writes the reports.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark every model installed on the Ollama host",
	Long: `The 'run' command discovers the models installed on the Ollama host, sends the
prompt to each of them in turn, and writes an HTML report (and optionally JSON)
with token rate, score, tier, and GPU usage per model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(cmd.Context(), GetConfig(), cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().String("prompt", appconfig.DefaultPrompt, "prompt sent to every model")
	runCmd.Flags().String("output", appconfig.DefaultOutput, "report file name prefix")
	runCmd.Flags().Bool("no-chart", false, "omit the token rate chart")
	runCmd.Flags().Bool("no-browser", false, "do not open the HTML report")
	runCmd.Flags().Bool("tui", false, "show an interactive progress view")
	runCmd.Flags().Bool("json", false, "also write a JSON report")

	_ = viper.BindPFlag("prompt", runCmd.Flags().Lookup("prompt"))
	_ = viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("noChart", runCmd.Flags().Lookup("no-chart"))
	_ = viper.BindPFlag("noBrowser", runCmd.Flags().Lookup("no-browser"))
	_ = viper.BindPFlag("tui", runCmd.Flags().Lookup("tui"))
	_ = viper.BindPFlag("json", runCmd.Flags().Lookup("json"))

	rootCmd.AddCommand(runCmd)
}

// runBenchmark performs a full run against cfg.Host. An aborted run
// (discovery failure, no models, or cancellation) writes no report.
func runBenchmark(ctx context.Context, cfg appconfig.Config, out io.Writer) error {
	client := ollama.NewClient(cfg.Host, nil)
	probe := newGPUProbe(cfg.GPUCheckTimeout())
	started := now()

	// The console belongs to the status lines or the progress view.
	logging.SetConsole(false)
	defer logging.SetConsole(true)
	logging.LogEvent("Run started against %s with prompt %q", client.BaseURL(), cfg.Prompt)

	var (
		result benchmark.RunResult
		err    error
	)
	if cfg.TUI {
		result, err = runWithProgress(ctx, client, probe, cfg)
	} else {
		fmt.Fprintf(out, "Benchmarking models on %s\n", client.BaseURL())
		runner := benchmark.NewRunner(client,
			benchmark.WithAccelerator(probe),
			benchmark.WithObserver(benchmark.MultiObserver{benchmark.LogObserver{}, consoleObserver{out: out}}),
		)
		result, err = runner.Run(ctx, cfg.Prompt, cfg.RequestTimeout())
	}

	if err != nil {
		logging.LogEvent("Run aborted: %v", err)
		if errors.Is(err, benchmark.ErrNoModels) {
			fmt.Fprintln(out, failedResult(fmt.Sprintf("No models installed on %s. Pull one with `ollama pull <model>`.", client.BaseURL())))
		}
		if len(result.Records) > 0 {
			fmt.Fprintln(out, "\nPartial results (no report written):")
			fmt.Fprint(out, report.Summary(result))
		}
		return err
	}

	meta := benchmark.CollectMetadata(ctx, cfg.Prompt, client.BaseURL(), probe, commandRunner, started)
	doc := report.Document{Metadata: meta, Result: result}

	htmlPath := report.FileName(cfg.Output, started, ".html")
	if err := report.WriteHTML(htmlPath, doc, report.HTMLOptions{Chart: !cfg.NoChart}); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	logging.LogEvent("HTML report written to %s", htmlPath)

	fmt.Fprintln(out)
	fmt.Fprint(out, report.Summary(result))
	if !cfg.NoChart {
		fmt.Fprintln(out)
		fmt.Fprint(out, report.Chart(result, chartWidth, chartHeight))
	}
	fmt.Fprintf(out, "\n%s %s\n", successfulResult("HTML report:"), htmlPath)

	if cfg.JSON {
		jsonPath := report.FileName(cfg.Output, started, ".json")
		if err := report.WriteJSON(jsonPath, doc); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
		logging.LogEvent("JSON report written to %s", jsonPath)
		fmt.Fprintf(out, "%s %s\n", successfulResult("JSON report:"), jsonPath)
	}

	if !cfg.NoBrowser {
		if err := openReport(htmlPath); err != nil {
			logging.LogEvent("Could not open %s in a browser: %v", htmlPath, err)
		}
	}
	return nil
}

type runOutcome struct {
	result benchmark.RunResult
	err    error
}

// runWithProgress drives the runner on its own goroutine while a bubbletea
// program renders its events. Quitting the view cancels the run.
func runWithProgress(ctx context.Context, client *ollama.Client, probe gpuProbe, cfg appconfig.Config) (benchmark.RunResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(progress.New(cancel))
	runner := benchmark.NewRunner(client,
		benchmark.WithAccelerator(probe),
		benchmark.WithObserver(benchmark.MultiObserver{benchmark.LogObserver{}, progress.Observer{Program: program}}),
	)

	done := make(chan runOutcome, 1)
	go func() {
		result, err := runner.Run(ctx, cfg.Prompt, cfg.RequestTimeout())
		done <- runOutcome{result: result, err: err}
		program.Send(progress.DoneMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return benchmark.RunResult{}, fmt.Errorf("progress view: %w", err)
	}
	outcome := <-done
	return outcome.result, outcome.err
}
