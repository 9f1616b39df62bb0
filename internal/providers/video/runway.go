package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"igpt/internal/domain"
	"igpt/internal/providers"
)

const (
	DefaultRunwayBaseURL = "https://api.dev.runwayml.com"
	DefaultRunwayModel   = "veo3"
	runwayAPIVersion     = "2024-11-06"
)

// RunwayOptions configures the Runway task client.
type RunwayOptions struct {
	APIKey         string
	BaseURL        string
	Model          string
	Duration       int
	RatePerMinute  int
	PollInterval   time.Duration
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Runway creates text-to-video tasks and polls them until they settle.
// Task creation is throttled client-side so bursts of regenerate clicks do
// not burn through the account quota.
type Runway struct {
	apiKey       string
	baseURL      string
	model        string
	duration     int
	pollInterval time.Duration
	limiter      *rate.Limiter
	httpClient   *http.Client
	logger       zerolog.Logger
}

type runwayTaskRequest struct {
	Model      string `json:"model"`
	PromptText string `json:"promptText"`
	Ratio      string `json:"ratio"`
	Duration   int    `json:"duration,omitempty"`
}

type runwayTask struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Output      []string `json:"output"`
	Failure     string   `json:"failure"`
	FailureCode string   `json:"failureCode"`
}

type runwayError struct {
	Error string `json:"error"`
}

func NewRunway(opts RunwayOptions) (*Runway, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("runway: api key is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultRunwayBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultRunwayModel
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = 8
	}
	perMinute := opts.RatePerMinute
	if perMinute <= 0 {
		perMinute = 6
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &Runway{
		apiKey:       apiKey,
		baseURL:      baseURL,
		model:        model,
		duration:     duration,
		pollInterval: poll,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		httpClient:   httpClient,
		logger:       opts.Logger,
	}, nil
}

func (r *Runway) Name() string { return "runway:" + r.model }

func (r *Runway) Generate(ctx context.Context, req providers.GenerateRequest) (*providers.Media, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("runway: wait for rate limiter: %w", err)
	}

	var task runwayTask
	err := r.do(ctx, http.MethodPost, "/v1/text_to_video", runwayTaskRequest{
		Model:      r.model,
		PromptText: req.Prompt,
		Ratio:      fmt.Sprintf("%d:%d", req.Width, req.Height),
		Duration:   r.duration,
	}, &task)
	if err != nil {
		return nil, err
	}
	if task.ID == "" {
		return nil, errors.New("runway: task id missing")
	}
	r.logger.Debug().
		Str("request_id", req.RequestID).
		Str("task_id", task.ID).
		Msg("runway: task created")

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		if err := r.do(ctx, http.MethodGet, "/v1/tasks/"+task.ID, nil, &task); err != nil {
			return nil, err
		}
		switch task.Status {
		case "SUCCEEDED":
			if len(task.Output) == 0 || strings.TrimSpace(task.Output[0]) == "" {
				return nil, fmt.Errorf("runway: task %s succeeded without output", task.ID)
			}
			return &providers.Media{
				URL:    task.Output[0],
				MIME:   "video/mp4",
				Width:  req.Width,
				Height: req.Height,
			}, nil
		case "FAILED", "CANCELLED":
			return nil, taskFailure(task)
		}
	}
}

func taskFailure(task runwayTask) error {
	msg := strings.TrimSpace(task.Failure)
	if msg == "" {
		msg = "task " + strings.ToLower(task.Status)
	}
	if strings.HasPrefix(task.FailureCode, "SAFETY") {
		return fmt.Errorf("runway: %s: %w", msg, domain.ErrContentPolicy)
	}
	return fmt.Errorf("runway: %s (%s)", msg, task.FailureCode)
}

func (r *Runway) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("runway: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("runway: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("X-Runway-Version", runwayAPIVersion)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("runway: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("runway: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		var detail runwayError
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error != "" {
			msg = detail.Error
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("runway: %s: %w", msg, domain.ErrRateLimited)
		}
		return fmt.Errorf("runway: status %d: %s", resp.StatusCode, msg)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("runway: decode response: %w", err)
	}
	return nil
}

var _ providers.Generator = (*Runway)(nil)
