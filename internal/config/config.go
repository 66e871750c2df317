package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vidcrop/internal/deps"
)

//go:embed sample_config.toml
var sampleConfig string

// Encoder contains ffmpeg/ffprobe discovery and diagnostics settings.
type Encoder struct {
	FFmpegPath      string `toml:"ffmpeg_path"`
	FFprobePath     string `toml:"ffprobe_path"`
	ResourceDir     string `toml:"resource_dir"`
	SearchDepth     int    `toml:"search_depth"`
	DiagnosticLines int    `toml:"diagnostic_lines"`
}

// Output contains fallbacks for values a crop request leaves unset.
type Output struct {
	DefaultFormat string `toml:"default_format"`
	DefaultWidth  uint32 `toml:"default_width"`
	DefaultHeight uint32 `toml:"default_height"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for vidcrop.
type Config struct {
	Encoder Encoder `toml:"encoder"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

const (
	defaultConfigPath = "~/.config/vidcrop/config.toml"
	projectConfigName = "vidcrop.toml"
)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Getenv answers environment lookups for the binary locators, substituting
// configured binary paths for FFMPEG_PATH and FFPROBE_PATH. Environment values
// were already folded in during Load, so the configured value is final.
func (c *Config) Getenv(key string) string {
	switch key {
	case deps.FFmpegEnvVar:
		return c.Encoder.FFmpegPath
	case deps.FFprobeEnvVar:
		return c.Encoder.FFprobePath
	default:
		return os.Getenv(key)
	}
}

// FFmpegLocator returns the encoder locator for this configuration.
func (c *Config) FFmpegLocator() *deps.Locator {
	return c.locator(deps.NewFFmpegLocator(c.Encoder.ResourceDir))
}

// FFprobeLocator returns the probe locator for this configuration.
func (c *Config) FFprobeLocator() *deps.Locator {
	return c.locator(deps.NewFFprobeLocator(c.Encoder.ResourceDir))
}

func (c *Config) locator(loc *deps.Locator) *deps.Locator {
	loc.Getenv = c.Getenv
	if c.Encoder.SearchDepth > 0 {
		loc.SearchDepth = c.Encoder.SearchDepth
	}
	return loc
}
