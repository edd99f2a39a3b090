package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BrokerChecker verifies that a Kafka broker can serve cluster metadata,
// not just accept TCP connections.
type BrokerChecker interface {
	CheckMetadata(ctx context.Context, addr string) error
}

// KafkaBrokerChecker implements BrokerChecker using kafka-go.
type KafkaBrokerChecker struct {
	Timeout time.Duration
}

// NewKafkaBrokerChecker creates a checker with the given timeout.
func NewKafkaBrokerChecker(timeout time.Duration) *KafkaBrokerChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &KafkaBrokerChecker{Timeout: timeout}
}

// CheckMetadata dials the broker, requests broker metadata and closes.
// Returns nil when the broker responds with at least one broker entry.
func (c *KafkaBrokerChecker) CheckMetadata(ctx context.Context, addr string) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("kafka dial %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	brokers, err := conn.Brokers()
	if err != nil {
		return fmt.Errorf("kafka metadata %s: %w", addr, err)
	}
	if len(brokers) == 0 {
		return fmt.Errorf("kafka %s: no brokers in metadata response", addr)
	}
	return nil
}
