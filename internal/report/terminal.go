package report

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/ollabench/internal/benchmark"
	"github.com/mwiater/ollabench/internal/metrics"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	tierStyles = map[metrics.Tier]lipgloss.Style{
		metrics.TierGood:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		metrics.TierFair:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		metrics.TierPoor:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		metrics.TierUnknown: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}

	barColor = lipgloss.Color("12")
)

var summaryHeaders = []string{"Model", "Tokens", "Eval (s)", "Load (s)", "Tokens/s", "GPU", "Score", "Tier"}

// Summary renders the run's records as an aligned terminal table with the
// token rate colored by tier.
func Summary(result benchmark.RunResult) string {
	if len(result.Records) == 0 {
		return "No benchmark results.\n"
	}

	rows := make([][]string, 0, len(result.Records))
	for _, rec := range result.Records {
		rows = append(rows, []string{
			rec.ModelName,
			fmt.Sprintf("%d", rec.Tokens),
			fmt.Sprintf("%.2f", rec.EvalSeconds),
			fmt.Sprintf("%.2f", rec.LoadSeconds),
			fmt.Sprintf("%.2f", rec.TokenRate),
			GPULabel(rec.GPU),
			fmt.Sprintf("%.2f", rec.Score),
			rec.Tier.String(),
		})
	}

	widths := make([]int, len(summaryHeaders))
	for i, h := range summaryHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = headerStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	for r, row := range rows {
		tierStyle := tierStyles[result.Records[r].Tier]
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + 2)
			if i == 4 || i == 7 {
				style = style.Inherit(tierStyle)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}

// Chart renders a bar chart of token rate per model sized width x height.
func Chart(result benchmark.RunResult, width, height int) string {
	if len(result.Records) == 0 {
		return "No data available for tokenrate chart\n"
	}

	barData := make([]barchart.BarData, 0, len(result.Records))
	for _, rec := range result.Records {
		barData = append(barData, barchart.BarData{
			Label: rec.ModelName,
			Values: []barchart.BarValue{
				{Name: "Tokenrate", Value: rec.TokenRate, Style: lipgloss.NewStyle().Foreground(barColor)},
			},
		})
	}

	bc := barchart.New(width, height)
	bc.PushAll(barData)
	bc.Draw()

	return fmt.Sprintf("Tokenrate (tokens/s)\n%s\n%s\n", strings.Repeat("─", width), bc.View())
}
