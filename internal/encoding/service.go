package encoding

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vidcrop/internal/crop"
	"vidcrop/internal/deps"
	"vidcrop/internal/logging"
	"vidcrop/internal/services"
)

// Service performs crop requests. It holds no per-request state, so one
// Service may serve concurrent callers provided their output paths differ.
type Service struct {
	locator *deps.Locator
	logger  *slog.Logger
	run     RunOptions
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the base logger. Nil keeps the no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStderrTee mirrors ffmpeg's stderr to w while it runs.
func WithStderrTee(w io.Writer) Option {
	return func(s *Service) {
		s.run.Tee = w
	}
}

// WithDiagnosticLines changes how many stderr lines a failure reports.
func WithDiagnosticLines(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.run.DiagnosticLines = n
		}
	}
}

// NewService builds a Service around locator. A nil locator uses the default
// ffmpeg lookup.
func NewService(locator *deps.Locator, opts ...Option) *Service {
	if locator == nil {
		locator = deps.NewFFmpegLocator("")
	}
	s := &Service{
		locator: locator,
		logger:  logging.NewNop(),
		run: RunOptions{
			Tool:            locator.Tool,
			DiagnosticLines: DefaultDiagnosticLines,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "encoding")
	return s
}

// Plan resolves the encoder and assembles the command for req without
// running it.
func (s *Service) Plan(req crop.Request) (crop.Command, deps.Location, error) {
	loc := s.locator.Locate()
	cmd, err := crop.Assemble(loc.Path, req)
	return cmd, loc, err
}

// CropVideo crops, trims, rescales and re-encodes req.InputPath into
// req.OutputPath, blocking until ffmpeg exits. The returned error, if any, is
// a *crop.Error whose message can be shown to the user unchanged.
func (s *Service) CropVideo(ctx context.Context, req crop.Request) error {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithStage(ctx, "crop")
	logger := logging.WithContext(ctx, s.logger)

	cmd, loc, err := s.Plan(req)
	if err != nil {
		logging.WarnWithContext(logger, "crop request rejected", "request_invalid",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "adjust the crop rectangle, output size or trim range"),
			logging.String(logging.FieldImpact, "no output was written"),
		)
		return err
	}
	logger.Debug("encoder resolved",
		logging.String("encoder_path", loc.Path),
		logging.String("encoder_source", loc.Source),
		logging.Bool("encoder_found", loc.Found),
	)
	logger.Debug("encoder command assembled", logging.String("command", cmd.String()))
	logger.Info("encode started",
		logging.String("input", req.InputPath),
		logging.String("output", req.OutputPath),
		logging.String("format", crop.FormatKey(req.Output.Format)),
	)

	started := time.Now()
	ctx = services.WithStage(ctx, "encode")
	if err := Run(ctx, cmd, s.run); err != nil {
		hint := "inspect the ffmpeg diagnostics above"
		if !loc.Found {
			hint = "install ffmpeg on PATH or set " + deps.FFmpegEnvVar
		}
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "encode failed", "encode_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hint),
			logging.Duration("elapsed", time.Since(started)),
		)
		return err
	}

	logger.Info("encode complete",
		logging.String("output", req.OutputPath),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return nil
}
