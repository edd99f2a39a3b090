// Package agent wires the evaluator, renderer and notifier together and
// runs them in one-shot or daemon mode.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brishavK71/kafka-monitoring/config"
	"github.com/brishavK71/kafka-monitoring/internal/connect"
	"github.com/brishavK71/kafka-monitoring/internal/monitor"
	"github.com/brishavK71/kafka-monitoring/internal/notify"
	"github.com/brishavK71/kafka-monitoring/internal/probe"
	"github.com/brishavK71/kafka-monitoring/internal/report"
	"github.com/brishavK71/kafka-monitoring/pkg/metrics"
)

// Process exit codes. Configuration failures exit with a distinct code so
// cron wrappers can tell "pipeline unhealthy" from "agent misconfigured".
const (
	ExitHealthy   = 0
	ExitUnhealthy = 1
	ExitConfig    = 2
)

// Run executes the agent in the configured mode and returns the process
// exit code.
func Run(cfg config.Config) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	evaluator := newEvaluator(cfg)
	notifier := notify.NewMailer(cfg.SMTP)

	if cfg.Mode == "serve" {
		return serve(ctx, cfg, evaluator, notifier)
	}
	return runOnce(ctx, cfg, evaluator, notifier)
}

// runOnce performs a single evaluation pass, sends the alert when issues
// were found, and maps the verdict to an exit code. Alert delivery failures
// never change the verdict.
func runOnce(ctx context.Context, cfg config.Config, evaluator *monitor.Evaluator, notifier notify.Notifier) int {
	result := evaluator.Run(ctx)
	dispatch(ctx, result, notifier)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			slog.ErrorContext(ctx, "failed to write metrics textfile",
				"path", cfg.MetricsTextfile, "error", err)
		}
	}

	if result.Healthy() {
		return ExitHealthy
	}
	return ExitUnhealthy
}

// dispatch renders and sends the alert for an unhealthy run. A healthy run
// never produces an email.
func dispatch(ctx context.Context, result monitor.RunResult, notifier notify.Notifier) {
	if result.Healthy() {
		slog.InfoContext(ctx, "no alerts to send")
		return
	}

	rendered, err := report.Render(result.Issues, result.FinishedAt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render alert report", "error", err)
		metrics.AlertsTotal.WithLabelValues("render_failed").Inc()
		return
	}

	slog.WarnContext(ctx, "sending alert email", "issues", len(result.Issues))
	if err := notifier.Send(rendered); err != nil {
		slog.ErrorContext(ctx, "failed to send alert email", "error", err)
		metrics.AlertsTotal.WithLabelValues("failed").Inc()
		return
	}

	slog.InfoContext(ctx, "alert email sent")
	metrics.AlertsTotal.WithLabelValues("sent").Inc()
}

func newEvaluator(cfg config.Config) *monitor.Evaluator {
	var brokerChecker probe.BrokerChecker
	if cfg.DeepBrokerCheck {
		brokerChecker = probe.NewKafkaBrokerChecker(cfg.ProbeTimeout)
	}

	return monitor.NewEvaluator(monitor.Options{
		Prober:        probe.NewTCPProber(cfg.ProbeTimeout),
		BrokerChecker: brokerChecker,
		ConnectAPI: connect.NewClient(connect.ClientConfig{
			BaseURL: fmt.Sprintf("http://%s", cfg.KafkaConnect.Addr()),
			Timeout: cfg.HTTPTimeout,
		}),
		ZookeeperAddr: cfg.Zookeeper.Addr(),
		BrokerAddr:    cfg.KafkaBroker.Addr(),
		ConnectAddr:   cfg.KafkaConnect.Addr(),
	})
}
