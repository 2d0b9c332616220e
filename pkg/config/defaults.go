// Package config provides viper-based configuration for raincatch.
package config

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = FormatText
)

// Output defaults.
const (
	DefaultOutputFormat = FormatText
)

// Render defaults.
const (
	DefaultRenderDraw    = false
	DefaultRenderWater   = false
	DefaultRenderNoColor = false
	DefaultRenderHTML    = ""
)

// Metrics defaults.
const (
	DefaultMetricsTextfile = ""
)

// Telemetry defaults.
const (
	DefaultTelemetryEndpoint    = ""
	DefaultTelemetryInsecure    = false
	DefaultTelemetryEnvironment = ""
)
