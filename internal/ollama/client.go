// internal/ollama/client.go
// Package ollama talks to the Ollama HTTP API: model discovery through
// /api/tags and non-streaming inference through /api/generate.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/ollabench/internal/logging"
	"github.com/mwiater/ollabench/internal/util"
)

// DefaultHost is the address a stock Ollama install listens on.
const DefaultHost = "http://localhost:11434"

const (
	tagsPath     = "/api/tags"
	generatePath = "/api/generate"

	// discoveryTimeout bounds /api/tags, which the run timeout does not cover.
	discoveryTimeout = 30 * time.Second
	maxErrorBody     = 512
)

// ErrTimeout reports that a request did not finish within its deadline.
var ErrTimeout = errors.New("ollama: request timed out")

// StatusError is returned when the host answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ollama: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("ollama: unexpected status %d: %s", e.StatusCode, e.Body)
}

// GenerateResult carries the counters of a completed /api/generate call.
// Durations are kept as raw numbers because their unit is not trusted.
type GenerateResult struct {
	Model        string  `json:"model"`
	EvalCount    int     `json:"eval_count"`
	EvalDuration float64 `json:"eval_duration"`
	LoadDuration float64 `json:"load_duration"`
	StatusCode   int     `json:"-"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Client is a minimal Ollama API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for baseURL. A nil httpClient uses a default
// client without its own timeout; deadlines come from request contexts.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultHost
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// BaseURL returns the host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels returns the names of the models installed on the host in the
// order the host lists them.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	body, status, err := c.do(ctx, http.MethodGet, tagsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("could not list models on %s: %w", c.baseURL, err)
	}
	if status != http.StatusOK {
		return nil, &StatusError{StatusCode: status, Body: truncate(body)}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("error parsing models from %s: %w", c.baseURL, err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Generate sends prompt to model with streaming disabled and waits at most
// timeout for the full response. A timeout is reported as ErrTimeout and a
// non-200 answer as *StatusError.
func (c *Client) Generate(ctx context.Context, model, prompt string, timeout time.Duration) (GenerateResult, error) {
	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return GenerateResult{}, fmt.Errorf("marshal generate request: %w", err)
	}
	logging.LogRequest("ollabench->ollama", c.baseURL, model, payload)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, status, err := c.do(ctx, http.MethodPost, generatePath, payload)
	if err != nil {
		if isTimeout(err) {
			return GenerateResult{}, fmt.Errorf("generate %s after %s: %w", model, timeout, ErrTimeout)
		}
		return GenerateResult{}, fmt.Errorf("generate %s: %w", model, err)
	}
	logging.LogRequest("ollama->ollabench", c.baseURL, model, body)

	if status != http.StatusOK {
		return GenerateResult{StatusCode: status}, &StatusError{StatusCode: status, Body: truncate(body)}
	}

	var result GenerateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return GenerateResult{StatusCode: status}, fmt.Errorf("decode generate response for %s: %w", model, err)
	}
	result.StatusCode = status
	if result.Model == "" {
		result.Model = model
	}
	return result, nil
}

// do executes a request and reads the whole body under ctx.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(body []byte) string {
	return util.TruncateRunes(string(body), maxErrorBody)
}
