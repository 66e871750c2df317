package config

const (
	defaultSearchDepth     = 5
	defaultDiagnosticLines = 12
	defaultOutputFormat    = "mp4"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	maxSearchDepth         = 32
	maxDiagnosticLines     = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Encoder: Encoder{
			SearchDepth:     defaultSearchDepth,
			DiagnosticLines: defaultDiagnosticLines,
		},
		Output: Output{
			DefaultFormat: defaultOutputFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
