package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vidcrop/internal/crop"
	"vidcrop/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Summarize a video's streams with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			loc := cfg.FFprobeLocator().Locate()
			result, err := ffprobe.Inspect(cmd.Context(), loc.Path, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				_, err := out.Write(append(result.RawJSON(), '\n'))
				return err
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, s := range result.Streams {
				rows = append(rows, []string{
					strconv.Itoa(s.Index),
					s.CodecType,
					s.CodecName,
					streamDetail(s),
				})
			}
			fmt.Fprintln(out, renderTable("Streams", []string{"#", "Type", "Codec", "Detail"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))

			info := result.SourceInfo()
			fmt.Fprintf(out, "Container: %s\n", result.Format.FormatName)
			if info.Duration > 0 {
				fmt.Fprintf(out, "Duration: %s\n", (time.Duration(info.Duration * float64(time.Second))).Round(time.Millisecond))
			}
			if info.Width > 0 {
				fmt.Fprintf(out, "Frame: %dx%d (full-frame crop encodes at %dx%d)\n",
					info.Width, info.Height, crop.MakeEven(info.Width), crop.MakeEven(info.Height))
			}
			fmt.Fprintf(out, "Audio: %s\n", yesNo(result.HasAudio()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "json", false, "Print ffprobe's raw JSON")
	return cmd
}

func streamDetail(s ffprobe.Stream) string {
	switch s.CodecType {
	case "video":
		detail := fmt.Sprintf("%dx%d", s.Width, s.Height)
		if fps := s.FrameRate(); fps > 0 {
			detail += fmt.Sprintf(" @ %.2f fps", fps)
		}
		if s.PixFmt != "" {
			detail += " " + s.PixFmt
		}
		return detail
	case "audio":
		detail := fmt.Sprintf("%d ch", s.Channels)
		if s.SampleRate != "" {
			detail += " " + s.SampleRate + " Hz"
		}
		if lang := s.Tags["language"]; lang != "" {
			detail += " (" + lang + ")"
		}
		return detail
	default:
		return ""
	}
}
