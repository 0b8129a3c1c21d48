package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("operation_id", "op-1").Msg("operation patched")

	var output map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &output)
	require.NoError(t, err, "logger output should be valid JSON")

	assert.Equal(t, "operation patched", output["message"])
	assert.Equal(t, "op-1", output["operation_id"])
	assert.Equal(t, "info", output["level"])
	assert.Contains(t, output, "time", "should include timestamp")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(NewWithWriter("info", &buf), "reconciler")

	log.Info().Msg("hello")

	var output map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "reconciler", output["component"])
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"WARNING", false, false, true},
		{"error", false, false, false},
		{"invalid", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var debug, info, warn bytes.Buffer
			debugLog := NewWithWriter(tt.level, &debug)
			debugLog.Debug().Msg("d")
			infoLog := NewWithWriter(tt.level, &info)
			infoLog.Info().Msg("i")
			warnLog := NewWithWriter(tt.level, &warn)
			warnLog.Warn().Msg("w")
			assert.Equal(t, tt.debugSeen, debug.Len() > 0)
			assert.Equal(t, tt.infoSeen, info.Len() > 0)
			assert.Equal(t, tt.warnSeen, warn.Len() > 0)
		})
	}
}

func TestNew_PrettyMode(t *testing.T) {
	// Pretty mode writes to stdout; only check it does not panic.
	log := New("info", true)
	log.Info().Msg("pretty mode test")
}
