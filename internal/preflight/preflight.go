package preflight

import (
	"context"
	"strings"

	"vidcrop/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check. outputDir is where crops will be
// written; it is skipped when empty.
func RunAll(ctx context.Context, cfg *config.Config, outputDir string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckEncoderVersion(ctx, "FFmpeg version", cfg.FFmpegLocator()),
	}

	if dir := strings.TrimSpace(outputDir); dir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", dir))
	}

	if dir := strings.TrimSpace(cfg.Logging.Dir); dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", dir))
	}

	return results
}
