// Package connect consumes the Kafka Connect REST API.
package connect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// StateRunning is the healthy state reported for connectors and tasks.
const StateRunning = "RUNNING"

// ConnectorState is the state block of a connector status response.
type ConnectorState struct {
	State    string `json:"state"`
	WorkerID string `json:"worker_id"`
}

// TaskState is one entry of the tasks array in a connector status response.
type TaskState struct {
	ID       int    `json:"id"`
	State    string `json:"state"`
	WorkerID string `json:"worker_id"`
	Trace    string `json:"trace,omitempty"`
}

// ConnectorStatus is the response of GET /connectors/{name}/status.
type ConnectorStatus struct {
	Name      string         `json:"name"`
	Connector ConnectorState `json:"connector"`
	Tasks     []TaskState    `json:"tasks"`
}

// API is the subset of the Kafka Connect REST API the evaluator consumes.
// This allows for a fake implementation in tests.
type API interface {
	Ping(ctx context.Context) error
	ListConnectors(ctx context.Context) ([]string, error)
	ConnectorStatus(ctx context.Context, name string) (ConnectorStatus, error)
}

// Client implements API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a Kafka Connect REST client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Ping checks the REST API root. Success is HTTP 200; any other status maps
// to ErrUnhealthy and transport failures to ErrUnreachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, "/")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// ListConnectors returns the registered connector names, in API order.
func (c *Client) ListConnectors(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "/connectors")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return names, nil
}

// ConnectorStatus fetches the status of a single connector and its tasks.
func (c *Client) ConnectorStatus(ctx context.Context, name string) (ConnectorStatus, error) {
	resp, err := c.get(ctx, "/connectors/"+url.PathEscape(name)+"/status")
	if err != nil {
		return ConnectorStatus{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ConnectorStatus{}, fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	var status ConnectorStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return ConnectorStatus{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return status, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}
