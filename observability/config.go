package observability

import (
	"time"

	"github.com/kbukum/rxkit/validation"
)

// Config configures the OpenTelemetry exporters.
type Config struct {
	// Enabled turns exporting on. When false Init installs nothing.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment.
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// DefaultConfig returns sensible defaults for development.
func DefaultConfig(serviceName string) Config {
	cfg := Config{ServiceName: serviceName, Environment: "development", Insecure: true, SampleRate: 1.0}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. SampleRate is left alone since 0 is a
// meaningful rate.
func (c *Config) ApplyDefaults() {
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.New().
		Required("service_name", c.ServiceName).
		Required("endpoint", c.Endpoint).
		Range("sample_rate", c.SampleRate, 0, 1).
		Custom(c.Interval > 0, "interval", "must be positive").
		Validate()
}
