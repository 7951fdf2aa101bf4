package progress

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwiater/ollabench/internal/benchmark"
	"github.com/mwiater/ollabench/internal/metrics"
	"github.com/mwiater/ollabench/internal/ollama"
)

type captureSender struct {
	msgs []tea.Msg
}

func (c *captureSender) Send(msg tea.Msg) { c.msgs = append(c.msgs, msg) }

func TestModelLifecycle(t *testing.T) {
	m := New(nil)
	if m.Init() == nil {
		t.Fatalf("expected spinner tick from Init")
	}

	m.Update(modelStartedMsg{index: 1, total: 3, model: "llama3"})
	if view := m.View(); !strings.Contains(view, "Benchmarking llama3 (1/3)") {
		t.Fatalf("expected in-flight model in view:\n%s", view)
	}

	m.Update(modelCompletedMsg{record: benchmark.Record{ModelName: "llama3", TokenRate: 42.5, Score: 8.5, Tier: metrics.TierGood}})
	m.Update(modelStartedMsg{index: 2, total: 3, model: "slow"})
	m.Update(modelSkippedMsg{model: "slow", err: fmt.Errorf("generate slow: %w", ollama.ErrTimeout)})
	m.Update(modelSkippedMsg{model: "broken", err: errors.New("unexpected status 500")})

	view := m.View()
	for _, want := range []string{"42.50 tokens/s", "good", "timed out", "unexpected status 500"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Benchmarking") {
		t.Fatalf("expected no in-flight model after skip:\n%s", view)
	}

	_, cmd := m.Update(DoneMsg{})
	if cmd == nil {
		t.Fatalf("expected quit command after DoneMsg")
	}
	if !strings.Contains(m.View(), "Run complete.") {
		t.Fatalf("expected completion line:\n%s", m.View())
	}
}

func TestModelQuitCancelsRun(t *testing.T) {
	cancelled := false
	m := New(func() { cancelled = true })
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !cancelled || cmd == nil {
		t.Fatalf("expected cancel and quit on q, cancelled=%v", cancelled)
	}
}

func TestModelDoneWithError(t *testing.T) {
	m := New(nil)
	m.Update(DoneMsg{Err: benchmark.ErrNoModels})
	if !strings.Contains(m.View(), "Run aborted: no models installed") {
		t.Fatalf("expected abort line:\n%s", m.View())
	}
}

func TestObserverForwardsEvents(t *testing.T) {
	sender := &captureSender{}
	var o benchmark.Observer = Observer{Program: sender}
	o.ModelStarted(1, 2, "a")
	o.ModelCompleted(benchmark.Record{ModelName: "a"})
	o.ModelSkipped("b", errors.New("boom"))

	if len(sender.msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(sender.msgs))
	}
	if _, ok := sender.msgs[0].(modelStartedMsg); !ok {
		t.Fatalf("unexpected first message %T", sender.msgs[0])
	}
	if _, ok := sender.msgs[1].(modelCompletedMsg); !ok {
		t.Fatalf("unexpected second message %T", sender.msgs[1])
	}
	if _, ok := sender.msgs[2].(modelSkippedMsg); !ok {
		t.Fatalf("unexpected third message %T", sender.msgs[2])
	}
}
