package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/brishavK71/kafka-monitoring/internal/connect"
	"github.com/brishavK71/kafka-monitoring/internal/probe"
	"github.com/brishavK71/kafka-monitoring/pkg/logger"
	"github.com/brishavK71/kafka-monitoring/pkg/metrics"
	"github.com/google/uuid"
)

// Service labels used in issues and reports.
const (
	ServiceZookeeper         = "Zookeeper"
	ServiceKafkaBroker       = "Kafka Broker"
	ServiceKafkaConnect      = "Kafka Connect"
	ServiceConnectAPI        = "Kafka Connect API"
	ServiceConnectConnectors = "Kafka Connect Connectors"
)

// Evaluator drives the probes and REST checks against the configured
// endpoints and accumulates issues. It is the only writer of the issue list.
type Evaluator struct {
	prober probe.Prober
	broker probe.BrokerChecker // optional deep broker check
	api    connect.API

	zookeeperAddr string
	brokerAddr    string
	connectAddr   string

	now func() time.Time
}

// Options configures an Evaluator.
type Options struct {
	Prober        probe.Prober
	BrokerChecker probe.BrokerChecker // nil disables the metadata check
	ConnectAPI    connect.API
	ZookeeperAddr string
	BrokerAddr    string
	ConnectAddr   string
	Now           func() time.Time // defaults to time.Now
}

// NewEvaluator creates an evaluator from the given collaborators.
func NewEvaluator(opts Options) *Evaluator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		prober:        opts.Prober,
		broker:        opts.BrokerChecker,
		api:           opts.ConnectAPI,
		zookeeperAddr: opts.ZookeeperAddr,
		brokerAddr:    opts.BrokerAddr,
		connectAddr:   opts.ConnectAddr,
		now:           now,
	}
}

// Run performs one full evaluation pass. Checks run strictly sequentially:
// Zookeeper and the broker are always probed, REST checks only happen when
// the Connect port is reachable, connector checks only when the API root and
// the connector listing succeed.
func (e *Evaluator) Run(ctx context.Context) RunResult {
	result := RunResult{
		RunID:     uuid.New().String(),
		StartedAt: e.now(),
	}
	ctx = logger.WithRunID(ctx, result.RunID)

	slog.InfoContext(ctx, "starting health check run")

	result.Issues = append(result.Issues, e.checkPort(ctx, ServiceZookeeper, e.zookeeperAddr)...)
	result.Issues = append(result.Issues, e.checkBroker(ctx)...)

	connectIssues := e.checkPort(ctx, ServiceKafkaConnect, e.connectAddr)
	result.Issues = append(result.Issues, connectIssues...)

	// An unreachable Connect port makes REST checks meaningless and is
	// already reported.
	if len(connectIssues) == 0 {
		result.Issues = append(result.Issues, e.checkConnectAPI(ctx)...)
	}

	result.FinishedAt = e.now()

	metrics.RunsTotal.WithLabelValues(verdict(len(result.Issues))).Inc()
	metrics.LastRunIssues.Set(float64(len(result.Issues)))

	if result.Healthy() {
		slog.InfoContext(ctx, "all services are healthy")
	} else {
		slog.WarnContext(ctx, "health check run found issues", "issues", len(result.Issues))
	}
	return result
}

// checkPort probes one TCP endpoint and converts a failure into one issue.
func (e *Evaluator) checkPort(ctx context.Context, service, addr string) []Issue {
	res := e.prober.Probe(ctx, addr)
	metrics.ProbeDuration.WithLabelValues(service).Observe(res.Latency.Seconds())

	if res.Reachable {
		slog.InfoContext(ctx, "service is reachable", "service", service, "addr", addr, "latency", res.Latency)
		metrics.ChecksTotal.WithLabelValues(service, "ok").Inc()
		return nil
	}

	status := StatusDown
	msg := fmt.Sprintf("%s is DOWN - cannot connect to %s", service, addr)
	if isProbeFault(res.Err) {
		status = StatusError
		msg = fmt.Sprintf("%s check failed: %v", service, res.Err)
	}

	slog.ErrorContext(ctx, "service is unreachable", "service", service, "addr", addr, "error", res.Err)
	metrics.ChecksTotal.WithLabelValues(service, "failed").Inc()

	return []Issue{{
		Service:   service,
		Status:    status,
		Message:   msg,
		Timestamp: e.now(),
	}}
}

// checkBroker probes the broker port and, when enabled, verifies it can
// serve cluster metadata.
func (e *Evaluator) checkBroker(ctx context.Context) []Issue {
	issues := e.checkPort(ctx, ServiceKafkaBroker, e.brokerAddr)
	if len(issues) > 0 || e.broker == nil {
		return issues
	}

	if err := e.broker.CheckMetadata(ctx, e.brokerAddr); err != nil {
		slog.ErrorContext(ctx, "broker metadata check failed", "addr", e.brokerAddr, "error", err)
		metrics.ChecksTotal.WithLabelValues(ServiceKafkaBroker, "failed").Inc()
		return []Issue{{
			Service:   ServiceKafkaBroker,
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("Kafka Broker accepted the connection but failed the metadata check: %v", err),
			Timestamp: e.now(),
		}}
	}

	slog.InfoContext(ctx, "broker metadata check passed", "addr", e.brokerAddr)
	return nil
}

// checkConnectAPI checks the REST root, the connector list and every
// connector's status. Each stage gates the next.
func (e *Evaluator) checkConnectAPI(ctx context.Context) []Issue {
	if err := e.api.Ping(ctx); err != nil {
		status := StatusUnreachable
		if errors.Is(err, connect.ErrUnhealthy) {
			status = StatusUnhealthy
		}
		slog.ErrorContext(ctx, "connect api check failed", "error", err)
		metrics.ChecksTotal.WithLabelValues(ServiceConnectAPI, "failed").Inc()
		return []Issue{{
			Service:   ServiceConnectAPI,
			Status:    status,
			Message:   fmt.Sprintf("Kafka Connect REST API check failed: %v", err),
			Timestamp: e.now(),
		}}
	}
	slog.InfoContext(ctx, "connect rest api is responding")
	metrics.ChecksTotal.WithLabelValues(ServiceConnectAPI, "ok").Inc()

	names, err := e.api.ListConnectors(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list connectors", "error", err)
		metrics.ChecksTotal.WithLabelValues(ServiceConnectConnectors, "failed").Inc()
		return []Issue{{
			Service:   ServiceConnectConnectors,
			Status:    StatusError,
			Message:   fmt.Sprintf("failed to retrieve connectors list: %v", err),
			Timestamp: e.now(),
		}}
	}
	slog.InfoContext(ctx, "retrieved connector list", "connectors", names)

	var issues []Issue
	for _, name := range names {
		issues = append(issues, e.checkConnector(ctx, name)...)
	}
	return issues
}

// checkConnector fetches one connector's status and reports the connector
// and each of its tasks when not RUNNING. A failed status fetch is surfaced
// as an issue instead of dropping the connector from the report.
func (e *Evaluator) checkConnector(ctx context.Context, name string) []Issue {
	status, err := e.api.ConnectorStatus(ctx, name)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch connector status", "connector", name, "error", err)
		return []Issue{{
			Service:   "Connector: " + name,
			Status:    StatusError,
			Message:   fmt.Sprintf("failed to fetch status of connector '%s': %v", name, err),
			Timestamp: e.now(),
		}}
	}

	var issues []Issue
	if status.Connector.State != connect.StateRunning {
		slog.ErrorContext(ctx, "connector is not running", "connector", name, "state", status.Connector.State)
		issues = append(issues, Issue{
			Service:   "Connector: " + name,
			Status:    ConnectorState(status.Connector.State),
			Message:   fmt.Sprintf("Connector '%s' is in %s state", name, status.Connector.State),
			Timestamp: e.now(),
			Details:   &status,
		})
	} else {
		slog.InfoContext(ctx, "connector is running", "connector", name)
	}

	for _, task := range status.Tasks {
		if task.State == connect.StateRunning {
			continue
		}
		slog.ErrorContext(ctx, "connector task is not running",
			"connector", name, "task", task.ID, "state", task.State)
		issues = append(issues, Issue{
			Service:   fmt.Sprintf("Connector Task: %s-%d", name, task.ID),
			Status:    ConnectorState(task.State),
			Message:   fmt.Sprintf("Connector '%s' task %d is in %s state", name, task.ID, task.State),
			Timestamp: e.now(),
		})
	}
	return issues
}

// isProbeFault separates a clean connection failure (refused, timed out)
// from an unexpected fault such as a DNS resolution error.
func isProbeFault(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var addrErr *net.AddrError
	return errors.As(err, &addrErr)
}

func verdict(issues int) string {
	if issues == 0 {
		return "healthy"
	}
	return "unhealthy"
}
