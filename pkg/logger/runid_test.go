package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIDHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRunIDHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	t.Run("injects run_id from context", func(t *testing.T) {
		buf.Reset()
		ctx := WithRunID(context.Background(), "run-42")

		log.InfoContext(ctx, "check finished")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "run-42", record["run_id"])
	})

	t.Run("no run_id attribute without context value", func(t *testing.T) {
		buf.Reset()

		log.InfoContext(context.Background(), "check finished")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		_, ok := record["run_id"]
		assert.False(t, ok)
	})
}

func TestRunIDFromContext(t *testing.T) {
	assert.Empty(t, RunIDFromContext(context.Background()))
	assert.Equal(t, "abc", RunIDFromContext(WithRunID(context.Background(), "abc")))
}
