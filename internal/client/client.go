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
	"strings"
	"time"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/pkg/requestid"
	"github.com/google/uuid"
)

const apiPrefix = "/api/v1"

// Client is an HTTP client for the roi-planner API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non 2xx reply of the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
	if len(e.Fields) > 0 {
		msg += fmt.Sprintf(" (fields: %s)", strings.Join(e.Fields, ", "))
	}
	return msg
}

type ListOptions struct {
	Name           string
	Limit          int
	Offset         int
	ProfitableOnly bool
}

func (c *Client) Simulate(ctx context.Context, in v1alpha1.SimulationInput) (*v1alpha1.SimulationResult, error) {
	var res v1alpha1.SimulationResult
	if err := c.do(ctx, http.MethodPost, "/simulate", nil, in, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateScenario(ctx context.Context, in v1alpha1.ScenarioCreate) (*v1alpha1.Scenario, error) {
	var scenario v1alpha1.Scenario
	if err := c.do(ctx, http.MethodPost, "/scenarios", nil, in, http.StatusCreated, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (c *Client) ListScenarios(ctx context.Context, opts ListOptions) (v1alpha1.ScenarioList, error) {
	query := url.Values{}
	if opts.Name != "" {
		query.Set("name", opts.Name)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.ProfitableOnly {
		query.Set("profitable", "true")
	}

	list := v1alpha1.ScenarioList{}
	if err := c.do(ctx, http.MethodGet, "/scenarios", query, nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetScenario(ctx context.Context, id uuid.UUID) (*v1alpha1.Scenario, error) {
	var scenario v1alpha1.Scenario
	if err := c.do(ctx, http.MethodGet, "/scenarios/"+id.String(), nil, nil, http.StatusOK, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// ExportScenario returns the rendered file. An empty format lets the server pick xlsx.
func (c *Client) ExportScenario(ctx context.Context, id uuid.UUID, format string) ([]byte, error) {
	query := url.Values{}
	if format != "" {
		query.Set("format", format)
	}

	resp, body, err := c.send(ctx, http.MethodGet, "/scenarios/"+id.String()+"/export", query, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, body)
	}
	return body, nil
}

func (c *Client) RequestReport(ctx context.Context, req v1alpha1.ReportRequest) error {
	return c.do(ctx, http.MethodPost, "/report/generate", nil, req, http.StatusAccepted, nil)
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any, expected int, out any) error {
	resp, body, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}

	if resp.StatusCode != expected {
		return newAPIError(resp, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, in any) (*http.Response, []byte, error) {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.Header, id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call roi-planner api: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, body, nil
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(requestid.Header),
	}

	var reply v1alpha1.Error
	if err := json.Unmarshal(body, &reply); err == nil && reply.Message != "" {
		apiErr.Message = reply.Message
		apiErr.Fields = reply.Fields
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
