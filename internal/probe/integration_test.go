//go:build integration
// +build integration

package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

// TestAgainstRealBroker verifies both probe layers against a containerized
// Kafka broker.
func TestAgainstRealBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("probe-test-cluster"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)

	t.Run("tcp probe reaches the broker", func(t *testing.T) {
		res := NewTCPProber(5 * time.Second).Probe(ctx, brokers[0])
		assert.True(t, res.Reachable)
	})

	t.Run("metadata check passes", func(t *testing.T) {
		err := NewKafkaBrokerChecker(10 * time.Second).CheckMetadata(ctx, brokers[0])
		assert.NoError(t, err)
	})
}
