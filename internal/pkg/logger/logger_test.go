package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(Config{Level: level, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })
	return &buf
}

func TestCtx_CarriesRequestID(t *testing.T) {
	buf := capture(t, InfoLevel)

	ctx := WithRequestID(context.Background(), "req-42")
	Ctx(ctx).Info().Int64("subjectID", 7).Msg("Scheduled classes")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry[RequestIDField])
	assert.EqualValues(t, 7, entry["subjectID"])
	assert.Equal(t, "Scheduled classes", entry["message"])
}

func TestCtx_FallsBackToDefault(t *testing.T) {
	buf := capture(t, InfoLevel)

	Ctx(context.Background()).Info().Msg("no request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, RequestIDField)
	assert.Equal(t, "info", entry["level"])
}

func TestConfigure_Level(t *testing.T) {
	buf := capture(t, WarnLevel)
	Info().Msg("dropped")
	assert.Empty(t, buf.String())

	buf = capture(t, "verbose")
	Debug().Msg("dropped")
	Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
	assert.NotContains(t, buf.String(), "dropped")
}
