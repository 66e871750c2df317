package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidcrop/internal/deps"
	"vidcrop/internal/services"
)

func newLocateCommand(ctx *commandContext) *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show where the encoder is looked for and which copy is used",
		Long: `Show every location inspected while looking for ffmpeg (or ffprobe), in
search order, and the binary that would be used.

Order: the FFMPEG_PATH override (or [encoder] ffmpeg_path), the bundled
resources bin/ directory, the executable's directory, bin/ directories in the
executable's directory and its parents, then PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var locator *deps.Locator
			switch strings.ToLower(strings.TrimSpace(tool)) {
			case "", "ffmpeg":
				locator = cfg.FFmpegLocator()
			case "ffprobe":
				locator = cfg.FFprobeLocator()
			default:
				return services.Wrap(services.ErrValidation, "locate", "--tool", fmt.Sprintf("unsupported tool %q (want ffmpeg or ffprobe)", tool), nil)
			}

			loc, candidates := locator.Trace()
			rows := make([][]string, 0, len(candidates))
			for i, c := range candidates {
				rows = append(rows, []string{fmt.Sprint(i + 1), c.Source, c.Path, yesNo(c.Exists)})
			}

			out := cmd.OutOrStdout()
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable("Candidates", []string{"#", "Source", "Path", "Exists"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
			}
			if loc.Found {
				fmt.Fprintf(out, "Using: %s (%s)\n", loc.Path, loc.Source)
			} else {
				fmt.Fprintf(out, "Using: %s (resolved through PATH at run time)\n", loc.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tool, "tool", "ffmpeg", "Binary to locate (ffmpeg or ffprobe)")
	return cmd
}
