// Package probe performs single-shot reachability checks against the
// monitored endpoints.
package probe

import (
	"context"
	"net"
	"time"
)

// DefaultTimeout bounds a single probe when no other timeout is configured.
const DefaultTimeout = 5 * time.Second

// Result is the outcome of one connectivity probe.
type Result struct {
	Target    string        `json:"target"`
	Reachable bool          `json:"reachable"`
	Latency   time.Duration `json:"latency"`
	Err       error         `json:"-"`
}

// Prober opens TCP connections to host:port targets with a bounded timeout.
type Prober interface {
	Probe(ctx context.Context, addr string) Result
}

// TCPProber is the standard Prober backed by net.Dialer.
type TCPProber struct {
	Timeout time.Duration
}

// NewTCPProber creates a prober with the given per-probe timeout.
// A zero timeout falls back to DefaultTimeout.
func NewTCPProber(timeout time.Duration) *TCPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPProber{Timeout: timeout}
}

// Probe dials addr once. Refused, timed out and unresolvable targets all
// come back unreachable; the cause is kept in Err for diagnostics.
func (p *TCPProber) Probe(ctx context.Context, addr string) Result {
	dialer := &net.Dialer{Timeout: p.Timeout}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	latency := time.Since(start)

	if err != nil {
		return Result{Target: addr, Reachable: false, Latency: latency, Err: err}
	}
	_ = conn.Close()
	return Result{Target: addr, Reachable: true, Latency: latency}
}
