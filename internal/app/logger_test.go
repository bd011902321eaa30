package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name   string
		format string
		level  string
		check  func(t *testing.T, out string)
	}{
		{
			name: "json info drops debug", format: "json", level: "info",
			check: func(t *testing.T, out string) {
				var line map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &line))
				assert.Equal(t, "session created", line["msg"])
				assert.Equal(t, float64(4), line["length"])
			},
		},
		{
			name: "text debug keeps debug", format: "text", level: "debug",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "level=DEBUG")
				assert.Contains(t, out, "msg=\"session created\"")
			},
		},
		{
			name: "bad level means info", format: "text", level: "loud",
			check: func(t *testing.T, out string) {
				assert.NotContains(t, out, "level=DEBUG")
				assert.Contains(t, out, "level=INFO")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(&buf, tc.format, tc.level)
			log.Debug("round finished", "round", 1)
			log.Info("session created", "length", 4)
			tc.check(t, buf.String())
		})
	}
}
