package observability

import (
	"testing"

	"github.com/smallbiznis/agritatva/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "")

	cfg := LoadConfig(config.Config{AppName: "agritatva", AppVersion: "1.2.3", Environment: "production"})

	assert.Equal(t, "agritatva", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")

	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.Equal(t, "agritatva", cfg.ServiceName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, 0.5, cfg.OtelSamplingRatio)
	assert.True(t, cfg.Debug())
}

func TestDebugInDevelopment(t *testing.T) {
	assert.True(t, Config{Environment: "development"}.Debug())
	assert.True(t, Config{Environment: " Local "}.Debug())
	assert.False(t, Config{Environment: "staging"}.Debug())
}

func TestLoadConfigOTLPEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTLP_ENDPOINT", "")
	assert.Equal(t, "localhost:4317", LoadConfig(config.Config{}).OtelExporterEndpoint)

	t.Setenv("OTLP_ENDPOINT", " collector:4317 ")
	assert.Equal(t, "collector:4317", LoadConfig(config.Config{}).OtelExporterEndpoint)

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4318")
	assert.Equal(t, "otel:4318", LoadConfig(config.Config{}).OtelExporterEndpoint)
}
