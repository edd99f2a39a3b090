package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("ZOOKEEPER_HOST", "zk.local")
	t.Setenv("ZOOKEEPER_PORT", "2181")
	t.Setenv("KAFKA_BROKER_HOST", "kafka.local")
	t.Setenv("KAFKA_BROKER_PORT", "9092")
	t.Setenv("KAFKA_CONNECT_HOST", "connect.local")
	t.Setenv("KAFKA_CONNECT_PORT", "8083")
	t.Setenv("SMTP_SERVER", "mail.local")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_FROM_EMAIL", "monitor@example.com")
	t.Setenv("SMTP_TO_EMAILS", "ops@example.com,oncall@example.com")
}

func TestNew(t *testing.T) {
	t.Run("parses full configuration with defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := New("")
		require.NoError(t, err)

		assert.Equal(t, "zk.local:2181", cfg.Zookeeper.Addr())
		assert.Equal(t, "kafka.local:9092", cfg.KafkaBroker.Addr())
		assert.Equal(t, "connect.local:8083", cfg.KafkaConnect.Addr())
		assert.Equal(t, []string{"ops@example.com", "oncall@example.com"}, cfg.SMTP.ToEmails)

		// defaults
		assert.True(t, cfg.SMTP.UseTLS)
		assert.Equal(t, "once", cfg.Mode)
		assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 60*time.Second, cfg.CheckInterval)
		assert.False(t, cfg.DeepBrokerCheck)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("missing required field is an error", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SMTP_FROM_EMAIL", "")
		require.NoError(t, os.Unsetenv("SMTP_FROM_EMAIL"))

		_, err := New("")
		assert.Error(t, err)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("MODE", "batch")

		_, err := New("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MODE")
	})

	t.Run("loads values from a dotenv config file", func(t *testing.T) {
		setRequiredEnv(t)
		require.NoError(t, os.Unsetenv("ZOOKEEPER_HOST"))

		file := filepath.Join(t.TempDir(), "monitor.env")
		require.NoError(t, os.WriteFile(file, []byte("ZOOKEEPER_HOST=zk-from-file\nDEEP_BROKER_CHECK=true\n"), 0o600))

		cfg, err := New(file)
		require.NoError(t, err)
		assert.Equal(t, "zk-from-file", cfg.Zookeeper.Host)
		assert.True(t, cfg.DeepBrokerCheck)
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		setRequiredEnv(t)

		_, err := New(filepath.Join(t.TempDir(), "absent.env"))
		assert.Error(t, err)
	})
}
