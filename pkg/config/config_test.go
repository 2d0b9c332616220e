package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/raincatch/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raincatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	// An empty file falls back to defaults for every key.
	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(t, config.DefaultRenderDraw, cfg.Render.Draw)
	assert.Equal(t, config.DefaultRenderWater, cfg.Render.Water)
	assert.Equal(t, config.DefaultRenderHTML, cfg.Render.HTML)
	assert.Equal(t, config.DefaultMetricsTextfile, cfg.Metrics.Textfile)
	assert.Equal(t, config.DefaultTelemetryEndpoint, cfg.Telemetry.OTLPEndpoint)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
logging:
  level: debug
  format: json
output:
  format: yaml
render:
  draw: true
  water: true
  no_color: true
  html: /tmp/terrain.html
metrics:
  textfile: /tmp/raincatch.prom
telemetry:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  environment: staging
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.LevelDebug, cfg.Logging.Level)
	assert.Equal(t, config.FormatJSON, cfg.Logging.Format)
	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
	assert.True(t, cfg.Render.Draw)
	assert.True(t, cfg.Render.Water)
	assert.True(t, cfg.Render.NoColor)
	assert.Equal(t, "/tmp/terrain.html", cfg.Render.HTML)
	assert.Equal(t, "/tmp/raincatch.prom", cfg.Metrics.Textfile)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.Equal(t, "staging", cfg.Telemetry.Environment)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("RAINCATCH_OUTPUT_FORMAT", "json")
	t.Setenv("RAINCATCH_RENDER_DRAW", "true")
	t.Setenv("RAINCATCH_LOGGING_LEVEL", "warn")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Render.Draw)
	assert.Equal(t, config.LevelWarn, cfg.Logging.Level)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "log level", content: "logging:\n  level: loud\n", wantErr: config.ErrInvalidLogLevel},
		{name: "log format", content: "logging:\n  format: xml\n", wantErr: config.ErrInvalidLogFormat},
		{name: "output format", content: "output:\n  format: csv\n", wantErr: config.ErrInvalidOutputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate_LevelIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Logging: config.LoggingConfig{Level: "DEBUG", Format: config.FormatText},
		Output:  config.OutputConfig{Format: config.FormatText},
	}

	require.NoError(t, cfg.Validate())
}
