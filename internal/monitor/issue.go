// Package monitor evaluates the health of the Kafka pipeline and collects
// issues for alerting.
package monitor

import (
	"time"

	"github.com/brishavK71/kafka-monitoring/internal/connect"
)

// Status classifies an issue. Connector and task issues carry the raw state
// reported by the Connect API (FAILED, PAUSED, ...) instead of one of the
// fixed values.
type Status string

const (
	StatusDown        Status = "DOWN"
	StatusError       Status = "ERROR"
	StatusUnhealthy   Status = "UNHEALTHY"
	StatusUnreachable Status = "UNREACHABLE"
)

// ConnectorState converts a raw connector or task state into a Status.
func ConnectorState(raw string) Status {
	return Status(raw)
}

// Issue is one detected problem. Issues exist only within the run that
// observed them.
type Issue struct {
	Service   string                   `json:"service"`
	Status    Status                   `json:"status"`
	Message   string                   `json:"message"`
	Timestamp time.Time                `json:"timestamp"`
	Details   *connect.ConnectorStatus `json:"details,omitempty"`
}

// RunResult is the outcome of one full evaluation pass.
type RunResult struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Issues     []Issue   `json:"issues"`
}

// Healthy reports whether the run found no issues.
func (r RunResult) Healthy() bool {
	return len(r.Issues) == 0
}
