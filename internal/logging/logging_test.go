package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.InfoLevel, true)

	l.Debug().Msg("hidden")
	l.Info().Str("user_id", "u1").Msg("installed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "installed", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.DebugLevel, false)

	l.Debug().Str("plugin_slug", "BrainDriveChat").Msg("lookup")
	out := buf.String()
	assert.Contains(t, out, "lookup")
	assert.Contains(t, out, "plugin_slug=BrainDriveChat")
	assert.NotContains(t, out, "\x1b[")
}
