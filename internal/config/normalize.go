package config

import (
	"fmt"
	"os"
	"strings"

	"vidcrop/internal/deps"
)

func (c *Config) normalize() error {
	if err := c.normalizeEncoder(); err != nil {
		return err
	}
	c.normalizeOutput()
	return c.normalizeLogging()
}

func (c *Config) normalizeEncoder() error {
	if value, ok := os.LookupEnv(deps.FFmpegEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Encoder.FFmpegPath = value
	}
	if value, ok := os.LookupEnv(deps.FFprobeEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Encoder.FFprobePath = value
	}

	var err error
	if c.Encoder.FFmpegPath, err = expandPath(strings.TrimSpace(c.Encoder.FFmpegPath)); err != nil {
		return fmt.Errorf("encoder.ffmpeg_path: %w", err)
	}
	if c.Encoder.FFprobePath, err = expandPath(strings.TrimSpace(c.Encoder.FFprobePath)); err != nil {
		return fmt.Errorf("encoder.ffprobe_path: %w", err)
	}
	if c.Encoder.ResourceDir, err = expandPath(strings.TrimSpace(c.Encoder.ResourceDir)); err != nil {
		return fmt.Errorf("encoder.resource_dir: %w", err)
	}
	if c.Encoder.SearchDepth == 0 {
		c.Encoder.SearchDepth = defaultSearchDepth
	}
	if c.Encoder.DiagnosticLines == 0 {
		c.Encoder.DiagnosticLines = defaultDiagnosticLines
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.DefaultFormat = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Output.DefaultFormat), "."))
	if c.Output.DefaultFormat == "" {
		c.Output.DefaultFormat = defaultOutputFormat
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
