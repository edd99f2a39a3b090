package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brishavK71/kafka-monitoring/config"
	"github.com/brishavK71/kafka-monitoring/internal/monitor"
	"github.com/brishavK71/kafka-monitoring/internal/notify"
)

// latestResult keeps the most recent run for the /status endpoint.
type latestResult struct {
	mu     sync.RWMutex
	result monitor.RunResult
	ready  bool
}

func (l *latestResult) store(r monitor.RunResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = r
	l.ready = true
}

func (l *latestResult) load() (monitor.RunResult, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.result, l.ready
}

// serve runs the evaluation on an interval and exposes the agent's own HTTP
// surface until the context is cancelled.
func serve(ctx context.Context, cfg config.Config, evaluator *monitor.Evaluator, notifier notify.Notifier) int {
	latest := &latestResult{}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: newEngine(latest),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("monitoring agent started", "port", cfg.Port, "interval", cfg.CheckInterval)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.CheckInterval)
		defer ticker.Stop()

		for {
			result := evaluator.Run(gctx)
			latest.store(result)
			dispatch(gctx, result, notifier)

			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down monitoring agent")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("monitoring agent stopped with error", "error", err)
		return ExitUnhealthy
	}

	slog.Info("monitoring agent stopped")
	if result, ok := latest.load(); ok && !result.Healthy() {
		return ExitUnhealthy
	}
	return ExitHealthy
}
