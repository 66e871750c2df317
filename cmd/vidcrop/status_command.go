package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vidcrop/internal/deps"
	"vidcrop/internal/preflight"
	"vidcrop/internal/services"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that ffmpeg, ffprobe and the output directory are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(outputDir)
			if dir == "" {
				if dir, err = os.Getwd(); err != nil {
					return fmt.Errorf("determine working directory: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var lines []string

			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			statuses := preflight.CheckSystemDeps(cfg)
			missingRequired := false
			for _, status := range statuses {
				kind, detail := dependencyStatus(status)
				if kind == statusError {
					missingRequired = true
				}
				lines = append(lines, renderStatusLine(status.Name, kind, detail, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			for _, result := range preflight.RunAll(cmd.Context(), cfg, dir) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if missingRequired {
				return services.Wrap(services.ErrExternalTool, "status", "dependencies", "required dependency missing", nil)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory crops will be written to (default: current directory)")
	return cmd
}

func dependencyStatus(status deps.Status) (statusKind, string) {
	switch {
	case status.Available:
		return statusOK, fmt.Sprintf("%s (%s)", status.Command, status.Description)
	case status.Optional:
		return statusWarn, fmt.Sprintf("%s; %s", status.Detail, status.Description)
	default:
		return statusError, fmt.Sprintf("%s; %s", status.Detail, status.Description)
	}
}
