package tracing

import "time"

const reconnectionPeriod = 5 * time.Second

// Config configures the global tracer provider.
type Config struct {
	// Disable installs a no-op tracer provider.
	Disable bool `yaml:"disable"`

	// ServiceName and ServiceVersion become resource attributes of every span.
	ServiceName    string `yaml:"service_name"    default:"wrapcall"`
	ServiceVersion string `yaml:"service_version" default:"dev"`

	// ExporterHost and ExporterPort address the OTLP gRPC collector.
	ExporterHost string `yaml:"exporter_host" default:"localhost"`
	ExporterPort int    `yaml:"exporter_port" default:"4317" validate:"min=1,max=65535"`

	// SampleRate is the fraction of root traces that are sampled. Zero means 1.
	SampleRate float64 `yaml:"sample_rate" default:"1" validate:"min=0,max=1"`

	// Tags are added as resource attributes.
	Tags map[string]string `yaml:"tags"`
}
