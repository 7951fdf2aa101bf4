package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/mwiater/ollabench/internal/util"
)

// HTMLOptions controls optional parts of the HTML report.
type HTMLOptions struct {
	Chart bool
}

type htmlRow struct {
	Model       string
	Tokens      int
	EvalSeconds float64
	LoadSeconds float64
	TokenRate   float64
	Score       float64
	TierColor   template.CSS
	Tier        string
	GPUColor    template.CSS
	GPULabel    string
}

type htmlData struct {
	Title         string
	Timestamp     string
	Prompt        string
	System        string
	GPU           string
	EngineVersion string
	EngineHost    string
	Rows          []htmlRow
	Chart         bool
	ChartLabels   template.JS
	ChartData     template.JS
}

// RenderHTML writes a standalone HTML report for doc to w.
func RenderHTML(w io.Writer, doc Document, opts HTMLOptions) error {
	labels, err := json.Marshal(doc.Result.ModelNames())
	if err != nil {
		return fmt.Errorf("marshal chart labels: %w", err)
	}
	rates, err := json.Marshal(doc.Result.TokenRates())
	if err != nil {
		return fmt.Errorf("marshal chart data: %w", err)
	}

	ts := doc.Metadata.Timestamp.Format(TimestampLayout)
	data := htmlData{
		Title:         "Ollama Benchmark Report - " + ts,
		Timestamp:     ts,
		Prompt:        doc.Metadata.Prompt,
		System:        doc.Metadata.System,
		GPU:           doc.Metadata.GPU,
		EngineVersion: doc.Metadata.EngineVersion,
		EngineHost:    doc.Metadata.EngineHost,
		Chart:         opts.Chart,
		ChartLabels:   template.JS(labels),
		ChartData:     template.JS(rates),
	}
	for _, rec := range doc.Result.Records {
		data.Rows = append(data.Rows, htmlRow{
			Model:       rec.ModelName,
			Tokens:      rec.Tokens,
			EvalSeconds: rec.EvalSeconds,
			LoadSeconds: rec.LoadSeconds,
			TokenRate:   rec.TokenRate,
			Score:       rec.Score,
			TierColor:   template.CSS(TierColor(rec.Tier)),
			Tier:        rec.Tier.String(),
			GPUColor:    template.CSS(GPUColor(rec.GPU)),
			GPULabel:    GPULabel(rec.GPU),
		})
	}

	return reportTemplate.Execute(w, data)
}

// WriteHTML renders doc to path, creating parent directories as needed.
func WriteHTML(path string, doc Document, opts HTMLOptions) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, doc, opts); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	if err := util.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("benchmark-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{ .Title }}</title>
<style>
body { font-family: Arial, sans-serif; background: #f9f9f9; color: #333; padding: 2em; }
table { border-collapse: collapse; width: 100%; background: white; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: center; }
th { background: #eee; }
th.sortable { cursor: pointer; }
th.sortable::after { content: " ⬍"; font-size: 0.8em; color: #888; }
</style>
<script>
document.addEventListener('DOMContentLoaded', () => {
  document.querySelectorAll("th.sortable").forEach((th, i) => {
    th.addEventListener("click", () => {
      const table = th.closest("table");
      const tbody = table.querySelector("tbody");
      const rows = Array.from(tbody.querySelectorAll("tr"));
      const asc = th.classList.toggle("asc");
      rows.sort((a, b) => {
        const va = a.children[i].innerText;
        const vb = b.children[i].innerText;
        const na = parseFloat(va.replace(",", ".")) || 0;
        const nb = parseFloat(vb.replace(",", ".")) || 0;
        return asc ? na - nb : nb - na;
      });
      rows.forEach(row => tbody.appendChild(row));
    });
  });
});
</script>
</head>
<body>
<h1>Ollama Benchmark Report</h1>
<h2>System information</h2>
<ul>
  <li><strong>System:</strong> {{ .System }}</li>
  <li><strong>GPU:</strong> {{ .GPU }}</li>
  <li><strong>Ollama:</strong> {{ .EngineVersion }} ({{ .EngineHost }})</li>
  <li><strong>Time:</strong> {{ .Timestamp }}</li>
</ul>
<p>Prompt: <code>{{ .Prompt }}</code></p>
{{ if .Chart }}
<h2>Tokenrate per model</h2>
<canvas id="tokenChart" width="800" height="400"></canvas>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<script>
new Chart(document.getElementById("tokenChart"), {
  type: 'bar',
  data: {
    labels: {{ .ChartLabels }},
    datasets: [{
      label: "Tokenrate (tokens/s)",
      data: {{ .ChartData }},
      backgroundColor: '#4e79a7'
    }]
  },
  options: {
    responsive: true,
    indexAxis: 'y',
    plugins: {
      legend: { display: false },
      tooltip: { callbacks: { label: (ctx) => ctx.raw + ' tokens/s' } }
    },
    scales: {
      x: { beginAtZero: true, title: { display: true, text: "Tokenrate (tokens/s)" } },
      y: { title: { display: true, text: "Models" } }
    }
  }
});
</script>
{{ end }}
<table>
<thead>
<tr>
  <th class="sortable">Model</th>
  <th class="sortable">Tokens</th>
  <th class="sortable">eval_duration (s)</th>
  <th class="sortable">load_duration (s)</th>
  <th class="sortable">Tokenrate (tokens/s)</th>
  <th class="sortable">GPU used</th>
  <th class="sortable">Score</th>
</tr>
</thead>
<tbody>
{{ range .Rows }}
<tr>
  <td>{{ .Model }}</td>
  <td>{{ .Tokens }}</td>
  <td>{{ .EvalSeconds }}</td>
  <td>{{ .LoadSeconds }}</td>
  <td style="background-color: {{ .TierColor }}" title="{{ .Tier }}">{{ .TokenRate }}</td>
  <td style="background-color: {{ .GPUColor }}">{{ .GPULabel }}</td>
  <td>{{ .Score }}</td>
</tr>
{{ end }}
</tbody>
</table>
</body>
</html>
`
