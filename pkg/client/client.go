// Package client is the REST client the editor binary drives the workflow
// API with. It satisfies the wizard's Persister interface so a session can
// save directly through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/caseflow/caseflow/pkg/models"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 4 << 20 // 4MB limit for API response bodies
)

// Client talks to the workflow API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ProblemError is a normalized RFC 7807 problem returned by the API. Detail
// carries the user-facing message verbatim.
type ProblemError struct {
	Status int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *ProblemError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}

	if e.Title != "" {
		return e.Title
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsNotFound reports whether the error is a 404 problem from the API.
func IsNotFound(err error) bool {
	problem, ok := err.(*ProblemError)

	return ok && problem.Status == http.StatusNotFound
}

// Options fetches the enumerations and template list for the editor pickers.
func (c *Client) Options(ctx context.Context) (*models.WorkflowOptions, error) {
	var options models.WorkflowOptions
	if err := c.do(ctx, http.MethodGet, "/workflows/options", nil, &options); err != nil {
		return nil, err
	}

	return &options, nil
}

// WorkflowList is one page of the workflow listing.
type WorkflowList struct {
	Workflows   []*models.Workflow `json:"workflows"`
	TotalCount  int64              `json:"total_count"`
	HasNextPage bool               `json:"has_next_page"`
}

// List fetches a page of workflows.
func (c *Client) List(ctx context.Context, limit, offset int) (*WorkflowList, error) {
	query := url.Values{}

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	path := "/workflows"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list WorkflowList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// Get fetches a single workflow by id.
func (c *Client) Get(ctx context.Context, id string) (*models.Workflow, error) {
	var workflow models.Workflow
	if err := c.do(ctx, http.MethodGet, "/workflows/"+url.PathEscape(id), nil, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// Create saves a new workflow definition.
func (c *Client) Create(ctx context.Context, draft *models.Workflow) (*models.Workflow, error) {
	var created models.Workflow
	if err := c.do(ctx, http.MethodPost, "/workflows", draft, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// Update replaces an existing workflow definition with the draft.
func (c *Client) Update(ctx context.Context, id string, draft *models.Workflow) (*models.Workflow, error) {
	var updated models.Workflow
	if err := c.do(ctx, http.MethodPatch, "/workflows/"+url.PathEscape(id), draft, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a workflow by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/workflows/"+url.PathEscape(id), nil, nil)
}

// TestRun performs a dry run of the workflow against the case identified by
// entityID.
func (c *Client) TestRun(ctx context.Context, id, entityID string) (*models.TestRunResult, error) {
	body := map[string]string{"entity_id": entityID}

	var result models.TestRunResult
	if err := c.do(ctx, http.MethodPost, "/workflows/"+url.PathEscape(id)+"/test", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Templates fetches all email templates.
func (c *Client) Templates(ctx context.Context) ([]*models.EmailTemplate, error) {
	var templates []*models.EmailTemplate
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &templates); err != nil {
		return nil, err
	}

	return templates, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		problem := &ProblemError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, problem); err != nil || problem.Status == 0 {
			problem.Status = resp.StatusCode
		}

		return problem
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
