// Package validation checks rxkit configuration sections.
//
// Struct tag validation backs the stream and redis configs; the
// programmatic Validator collects errors for sections whose rules depend on
// each other.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BufferSize int `mapstructure:"buffer_size" validate:"gte=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("endpoint", cfg.Endpoint).Range("sample_rate", rate, 0, 100)
//	if err := v.Validate(); err != nil { ... }
package validation
