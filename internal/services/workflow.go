package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// WorkflowInput is the tuple sent to the remote job-fit workflow.
type WorkflowInput struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
}

// WorkflowClient runs the primary (tier 1) remote analysis workflow and
// returns its free-text feedback.
type WorkflowClient interface {
	RunJobFitWorkflow(ctx context.Context, input WorkflowInput) (string, error)
}

type workflowClient struct {
	apiKey          string
	baseURL         string
	workflowIDs     []string
	pollInterval    time.Duration
	pollMaxAttempts int
	timeout         time.Duration
	httpClient      *http.Client
}

// NewWorkflowClient builds a client for an async workflow API: start an
// execution, receive an execution id, poll until it settles. Workflow IDs
// are alternates tried in order when one is missing or unavailable.
func NewWorkflowClient(apiKey, baseURL string, workflowIDs []string, pollInterval time.Duration, pollMaxAttempts int, timeout time.Duration) WorkflowClient {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if pollMaxAttempts <= 0 {
		pollMaxAttempts = 15
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &workflowClient{
		apiKey:          apiKey,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		workflowIDs:     workflowIDs,
		pollInterval:    pollInterval,
		pollMaxAttempts: pollMaxAttempts,
		timeout:         timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type workflowRunRequest struct {
	ResumeBase64   string `json:"resume_base64"`
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
}

type workflowRunResponse struct {
	ExecutionID string `json:"execution_id"`
	ID          string `json:"id"`
}

// workflowExecution covers the payload shapes the workflow API returns.
// Output fields are checked in fixed priority order: results, content,
// output, analysis.
type workflowExecution struct {
	Status   string `json:"status"`
	Results  string `json:"results"`
	Content  string `json:"content"`
	Output   string `json:"output"`
	Analysis string `json:"analysis"`
	Error    string `json:"error"`
}

func (c *workflowClient) RunJobFitWorkflow(ctx context.Context, input WorkflowInput) (string, error) {
	if c.apiKey == "" || c.baseURL == "" {
		return "", fmt.Errorf("workflow client is not configured")
	}
	if len(c.workflowIDs) == 0 {
		return "", fmt.Errorf("no workflow IDs configured")
	}

	var lastErr error
	for _, workflowID := range c.workflowIDs {
		feedback, err := c.runWorkflow(ctx, workflowID, input)
		if err == nil {
			return feedback, nil
		}

		log.Printf("⚠️  Workflow %s failed: %v\n", workflowID, err)
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}
	}

	return "", fmt.Errorf("all workflows failed: %w", lastErr)
}

func (c *workflowClient) runWorkflow(ctx context.Context, workflowID string, input WorkflowInput) (string, error) {
	executionID, err := c.startExecution(ctx, workflowID, input)
	if err != nil {
		return "", err
	}

	return c.pollExecution(ctx, executionID)
}

func (c *workflowClient) startExecution(ctx context.Context, workflowID string, input WorkflowInput) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(workflowRunRequest{
		ResumeBase64:   base64.StdEncoding.EncodeToString([]byte(input.ResumeText)),
		JobDescription: input.JobDescription,
		JobTitle:       input.JobTitle,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal workflow request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/workflows/%s/run", c.baseURL, workflowID)
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build workflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("workflow request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("workflow %s not found", workflowID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("workflow service returned status %d", resp.StatusCode)
	}

	var body workflowRunResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode run response: %w", err)
	}

	executionID := body.ExecutionID
	if executionID == "" {
		executionID = body.ID
	}
	if executionID == "" {
		return "", fmt.Errorf("run response missing execution id")
	}

	return executionID, nil
}

// pollExecution polls on a fixed interval with a bounded attempt count.
// Exceeding the cap is an ordinary tier failure, not a fatal error.
func (c *workflowClient) pollExecution(ctx context.Context, executionID string) (string, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= c.pollMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-ticker.C:
		}

		execution, err := c.fetchExecution(ctx, executionID)
		if err != nil {
			return "", err
		}

		switch strings.ToLower(execution.Status) {
		case "success":
			feedback := executionFeedback(execution)
			if strings.TrimSpace(feedback) == "" {
				return "", fmt.Errorf("execution %s succeeded with empty output", executionID)
			}
			return feedback, nil
		case "failed", "error":
			return "", fmt.Errorf("execution %s failed: %s", executionID, execution.Error)
		}
	}

	return "", fmt.Errorf("execution %s did not settle after %d polls", executionID, c.pollMaxAttempts)
}

func (c *workflowClient) fetchExecution(ctx context.Context, executionID string) (*workflowExecution, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/executions/%s", c.baseURL, executionID)
	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build poll request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("poll returned status %d", resp.StatusCode)
	}

	var execution workflowExecution
	if err := json.NewDecoder(resp.Body).Decode(&execution); err != nil {
		return nil, fmt.Errorf("failed to decode execution: %w", err)
	}

	return &execution, nil
}

func executionFeedback(execution *workflowExecution) string {
	for _, candidate := range []string{execution.Results, execution.Content, execution.Output, execution.Analysis} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}
