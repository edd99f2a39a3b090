//go:build !integration

package connect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
}

func TestClient_Ping(t *testing.T) {
	t.Run("200 is healthy", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/", r.URL.Path)
			_, _ = w.Write([]byte(`{"version":"3.7.0"}`))
		})

		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("non-200 maps to ErrUnhealthy", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.Ping(context.Background())
		assert.ErrorIs(t, err, ErrUnhealthy)
	})

	t.Run("refused connection maps to ErrUnreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := NewClient(ClientConfig{BaseURL: url, Timeout: time.Second})

		err := client.Ping(context.Background())
		assert.ErrorIs(t, err, ErrUnreachable)
	})
}

func TestClient_ListConnectors(t *testing.T) {
	t.Run("returns names in API order", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/connectors", r.URL.Path)
			_, _ = w.Write([]byte(`["sink-1","source-2","sink-0"]`))
		})

		names, err := client.ListConnectors(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"sink-1", "source-2", "sink-0"}, names)
	})

	t.Run("empty list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		names, err := client.ListConnectors(context.Background())
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("non-200 maps to ErrUnhealthy", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.ListConnectors(context.Background())
		assert.ErrorIs(t, err, ErrUnhealthy)
	})

	t.Run("malformed body maps to ErrBadPayload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"`))
		})

		_, err := client.ListConnectors(context.Background())
		assert.ErrorIs(t, err, ErrBadPayload)
	})
}

func TestClient_ConnectorStatus(t *testing.T) {
	t.Run("decodes connector and task states", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/connectors/jdbc-sink/status", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"name": "jdbc-sink",
				"connector": {"state": "RUNNING", "worker_id": "10.0.0.5:8083"},
				"tasks": [
					{"id": 0, "state": "RUNNING", "worker_id": "10.0.0.5:8083"},
					{"id": 1, "state": "FAILED", "worker_id": "10.0.0.6:8083", "trace": "boom"}
				]
			}`))
		})

		status, err := client.ConnectorStatus(context.Background(), "jdbc-sink")
		require.NoError(t, err)

		assert.Equal(t, "jdbc-sink", status.Name)
		assert.Equal(t, StateRunning, status.Connector.State)
		require.Len(t, status.Tasks, 2)
		assert.Equal(t, 1, status.Tasks[1].ID)
		assert.Equal(t, "FAILED", status.Tasks[1].State)
		assert.Equal(t, "boom", status.Tasks[1].Trace)
	})

	t.Run("escapes connector names in the URL path", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/connectors/weird%2Fname/status", r.URL.EscapedPath())
			_, _ = w.Write([]byte(`{"name":"weird/name","connector":{"state":"RUNNING"},"tasks":[]}`))
		})

		_, err := client.ConnectorStatus(context.Background(), "weird/name")
		assert.NoError(t, err)
	})

	t.Run("malformed body maps to ErrBadPayload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json at all`))
		})

		_, err := client.ConnectorStatus(context.Background(), "jdbc-sink")
		assert.ErrorIs(t, err, ErrBadPayload)
	})

	t.Run("timeout maps to ErrUnreachable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})
		client.httpClient.Timeout = 50 * time.Millisecond

		err := client.Ping(context.Background())
		assert.ErrorIs(t, err, ErrUnreachable)
	})
}
