package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoder() error {
	if c.Encoder.SearchDepth < 1 || c.Encoder.SearchDepth > maxSearchDepth {
		return fmt.Errorf("encoder.search_depth must be between 1 and %d", maxSearchDepth)
	}
	if c.Encoder.DiagnosticLines < 1 || c.Encoder.DiagnosticLines > maxDiagnosticLines {
		return fmt.Errorf("encoder.diagnostic_lines must be between 1 and %d", maxDiagnosticLines)
	}
	return nil
}

// Unknown formats are accepted here because the encoder falls back to the
// mp4 argument set for them.
func (c *Config) validateOutput() error {
	if (c.Output.DefaultWidth == 0) != (c.Output.DefaultHeight == 0) {
		return errors.New("output.default_width and output.default_height must be set together")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
