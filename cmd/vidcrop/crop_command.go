package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vidcrop/internal/config"
	"vidcrop/internal/crop"
	"vidcrop/internal/encoding"
	"vidcrop/internal/fileutil"
	"vidcrop/internal/logging"
	"vidcrop/internal/media/ffprobe"
	"vidcrop/internal/services"
)

type cropFlags struct {
	requestPath string
	input       string
	output      string
	x, y        uint32
	width       uint32
	height      uint32
	outWidth    uint32
	outHeight   uint32
	format      string
	start       float64
	end         float64
	dryRun      bool
	verbose     bool
	noProbe     bool
}

func newCropCommand(ctx *commandContext) *cobra.Command {
	var flags cropFlags

	cmd := &cobra.Command{
		Use:   "crop [input]",
		Short: "Crop, trim, rescale and re-encode a video",
		Long: fmt.Sprintf(`Crop, trim, rescale and re-encode a video with ffmpeg.

The request comes from flags, from a JSON document (--request, "-" for stdin),
or both; flags override the document. Omitted values are filled in:
  - no crop size: the whole source frame (needs ffprobe)
  - no output size: the configured default, else the crop size
  - no format: the configured default (%s)
  - no output path: cropped.<format> next to the input

Supported formats: %s. Unknown formats encode as H.264/AAC.

Example:
  vidcrop crop clip.mp4 --x 100 --y 40 --width 1280 --height 720 --format webm
  vidcrop crop clip.mp4 --start 2 --end 5 --dry-run
  vidcrop crop --request request.json`, crop.DefaultFormat, strings.Join(crop.KnownFormats, ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("input") {
					return services.Wrap(services.ErrValidation, "crop", "args", "pass the input either as an argument or with --input", nil)
				}
				flags.input = args[0]
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			req, openEnd, err := buildCropRequest(cmd, flags)
			if err != nil {
				return err
			}
			req = resolveCropRequest(cmd.Context(), cfg, logger, req, flags, openEnd)
			if err := checkOpenEnd(req, openEnd); err != nil {
				return err
			}

			opts := []encoding.Option{
				encoding.WithLogger(logger),
				encoding.WithDiagnosticLines(cfg.Encoder.DiagnosticLines),
			}
			if flags.verbose {
				opts = append(opts, encoding.WithStderrTee(cmd.ErrOrStderr()))
			}
			svc := encoding.NewService(cfg.FFmpegLocator(), opts...)

			out := cmd.OutOrStdout()
			if flags.dryRun {
				command, loc, err := svc.Plan(req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, command.String())
				if !loc.Found {
					fmt.Fprintf(cmd.ErrOrStderr(), "note: ffmpeg not found in bundled locations; relying on PATH\n")
				}
				return nil
			}

			if fileutil.SamePath(req.InputPath, req.OutputPath) {
				return services.Wrap(services.ErrValidation, "crop", "output", "output path must differ from the input", nil)
			}
			lock, err := fileutil.LockOutput(outputLockDir(), req.OutputPath)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			if err := svc.CropVideo(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", req.OutputPath)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.requestPath, "request", "", "JSON request document (\"-\" reads stdin)")
	f.StringVarP(&flags.input, "input", "i", "", "Source video")
	f.StringVarP(&flags.output, "output", "o", "", "Destination file (default cropped.<format> beside the input)")
	f.Uint32Var(&flags.x, "x", 0, "Crop rectangle left edge in source pixels")
	f.Uint32Var(&flags.y, "y", 0, "Crop rectangle top edge in source pixels")
	f.Uint32Var(&flags.width, "width", 0, "Crop rectangle width")
	f.Uint32Var(&flags.height, "height", 0, "Crop rectangle height")
	f.Uint32Var(&flags.outWidth, "out-width", 0, "Encoded frame width")
	f.Uint32Var(&flags.outHeight, "out-height", 0, "Encoded frame height")
	f.StringVarP(&flags.format, "format", "f", "", "Output format ("+strings.Join(crop.KnownFormats, ", ")+")")
	f.Float64Var(&flags.start, "start", 0, "Trim start in seconds")
	f.Float64Var(&flags.end, "end", 0, "Trim end in seconds (default: end of source)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the ffmpeg command instead of running it")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Stream ffmpeg's stderr while encoding")
	f.BoolVar(&flags.noProbe, "no-probe", false, "Skip ffprobe; omitted sizes must then be given explicitly")
	return cmd
}

// buildCropRequest reads the optional request document and overlays every
// flag the user set explicitly. openEnd reports a trim started by --start
// whose end was given nowhere and should run to the end of the source.
func buildCropRequest(cmd *cobra.Command, flags cropFlags) (req crop.Request, openEnd bool, err error) {
	if path := strings.TrimSpace(flags.requestPath); path != "" {
		loaded, err := readRequestDocument(cmd.InOrStdin(), path)
		if err != nil {
			return crop.Request{}, false, err
		}
		req = loaded
	}

	set := cmd.Flags().Changed
	if set("input") || flags.input != "" {
		req.InputPath = flags.input
	}
	if set("output") {
		req.OutputPath = flags.output
	}
	if set("x") {
		req.Crop.X = flags.x
	}
	if set("y") {
		req.Crop.Y = flags.y
	}
	if set("width") {
		req.Crop.Width = flags.width
	}
	if set("height") {
		req.Crop.Height = flags.height
	}
	if set("out-width") {
		req.Output.Width = flags.outWidth
	}
	if set("out-height") {
		req.Output.Height = flags.outHeight
	}
	if set("format") {
		req.Output.Format = flags.format
	}
	if set("start") || set("end") {
		if req.Trim == nil {
			req.Trim = &crop.TrimRange{}
			openEnd = !set("end")
		}
		if set("start") {
			req.Trim.Start = flags.start
		}
		if set("end") {
			req.Trim.End = flags.end
		}
	}

	if strings.TrimSpace(req.InputPath) == "" {
		return crop.Request{}, false, services.Wrap(services.ErrValidation, "crop", "request", "an input video is required", nil)
	}
	return req, openEnd, nil
}

func readRequestDocument(stdin io.Reader, path string) (crop.Request, error) {
	var reader io.Reader
	if path == "-" {
		reader = stdin
	} else {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return crop.Request{}, services.Wrap(services.ErrValidation, "crop", "request", "resolve request path", err)
		}
		file, err := os.Open(expanded)
		if err != nil {
			return crop.Request{}, services.Wrap(services.ErrValidation, "crop", "request", "open request document", err)
		}
		defer file.Close()
		reader = file
	}

	var req crop.Request
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return crop.Request{}, services.Wrap(services.ErrValidation, "crop", "request", "decode request document", err)
	}
	return req, nil
}

// resolveCropRequest applies configured defaults and, unless disabled,
// probes the source so omitted sizes and open-ended trims resolve. An end
// the user supplied is never rewritten, even when it is 0.
func resolveCropRequest(ctx context.Context, cfg *config.Config, logger *slog.Logger, req crop.Request, flags cropFlags, openEnd bool) crop.Request {
	if strings.TrimSpace(req.Output.Format) == "" {
		req.Output.Format = cfg.Output.DefaultFormat
	}
	if req.Output.Width == 0 && req.Output.Height == 0 {
		req.Output.Width = cfg.Output.DefaultWidth
		req.Output.Height = cfg.Output.DefaultHeight
	}

	var src crop.SourceInfo
	if !flags.noProbe && needsProbe(req) {
		probeLoc := cfg.FFprobeLocator().Locate()
		result, err := ffprobe.Inspect(ctx, probeLoc.Path, req.InputPath)
		if err != nil {
			logging.WarnWithContext(logger, "source probe failed", "probe_failed",
				logging.Error(err),
				logging.String("ffprobe", probeLoc.Path),
				logging.String(logging.FieldErrorHint, "pass --width/--height explicitly or install ffprobe"),
				logging.String(logging.FieldImpact, "request defaults derived from the source were skipped"),
			)
		} else {
			src = result.SourceInfo()
			logger.Debug("source probed",
				logging.Int("width", int(src.Width)),
				logging.Int("height", int(src.Height)),
				logging.Float64("duration_seconds", src.Duration),
				logging.Bool("has_audio", result.HasAudio()),
			)
		}
	}
	if openEnd && req.Trim != nil && src.Duration > 0 {
		req.Trim.End = src.Duration
	}
	return crop.ApplyDefaults(req, src)
}

func needsProbe(req crop.Request) bool {
	if req.Crop.Width == 0 && req.Crop.Height == 0 {
		return true
	}
	return req.Trim != nil
}

// checkOpenEnd rejects a --start without --end when the source length
// could not be determined.
func checkOpenEnd(req crop.Request, openEnd bool) error {
	if !openEnd || req.Trim == nil || req.Trim.End != 0 {
		return nil
	}
	return services.Wrap(services.ErrValidation, "crop", "trim", "--end is required when the source duration is unknown", nil)
}

func outputLockDir() string {
	return filepath.Join(os.TempDir(), "vidcrop-locks")
}
