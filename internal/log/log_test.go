package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/abbrex/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	original := log.GetLevel()
	defer func() {
		log.SetOutput(nil)
		log.SetLevel(original)
	}()

	tests := []struct {
		name   string
		level  log.Level
		logged []string
		quiet  []string
	}{
		{"debug logs everything", log.LevelDebug, []string{"debug", "info", "warn", "error"}, nil},
		{"warn skips debug and info", log.LevelWarn, []string{"warn", "error"}, []string{"debug", "info"}},
		{"error only logs errors", log.LevelError, []string{"error"}, []string{"debug", "info", "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			log.SetLevel(tt.level)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")

			output := buf.String()
			for _, m := range tt.logged {
				assert.Contains(t, output, m+" message")
			}
			for _, m := range tt.quiet {
				assert.NotContains(t, output, m+" message")
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	original := log.GetLevel()
	log.SetLevel(log.LevelInfo)
	defer func() {
		log.SetOutput(nil)
		log.SetLevel(original)
	}()

	log.Info("expanded %q into %d nodes", "ul>li*3", 4)
	log.Warn("second line")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[ABBREX] INFO: expanded "ul>li*3" into 4 nodes`, lines[0])
	assert.Equal(t, "[ABBREX] WARN: second line", lines[1])
}

func TestNilOutput(t *testing.T) {
	log.SetOutput(nil)
	assert.NotPanics(t, func() { log.Error("dropped") })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"INFO", log.LevelInfo},
		{"Warn", log.LevelWarn},
		{"warning", log.LevelWarn},
		{"error", log.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := log.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.EqualFold(got.String(), tt.in) || tt.in == "warning")
		})
	}

	_, err := log.ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "LEVEL(9)", log.Level(9).String())
}

func TestEnabled(t *testing.T) {
	original := log.GetLevel()
	defer log.SetLevel(original)

	log.SetLevel(log.LevelWarn)
	assert.False(t, log.Enabled(log.LevelInfo))
	assert.True(t, log.Enabled(log.LevelError))
}
