package encoding

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"vidcrop/internal/crop"
)

// RunOptions tunes a single encoder invocation.
type RunOptions struct {
	// Tool names the encoder in error messages. Defaults to "ffmpeg".
	Tool string
	// DiagnosticLines bounds the stderr excerpt of a failed run.
	DiagnosticLines int
	// Tee, when set, also receives the raw stderr stream. Its write errors
	// are ignored.
	Tee io.Writer
}

// Run executes cmd and blocks until it exits. Stdout is discarded. A process
// that cannot be started yields crop.ErrLaunchFailure; a non-zero exit yields
// crop.ErrEncodeFailure with the last lines of stderr.
func Run(ctx context.Context, cmd crop.Command, opts RunOptions) error {
	tool := strings.TrimSpace(opts.Tool)
	if tool == "" {
		tool = "ffmpeg"
	}

	tail := newTailWriter(opts.DiagnosticLines)
	var stderr io.Writer = tail
	if opts.Tee != nil {
		stderr = io.MultiWriter(tail, lossyWriter{w: opts.Tee})
	}

	proc := execCommand(ctx, cmd.Binary, cmd.Args...)
	proc.Stdout = nil
	proc.Stderr = stderr

	if err := proc.Start(); err != nil {
		return crop.LaunchError(tool, err)
	}
	if err := proc.Wait(); err != nil {
		diagnostics := tail.String()
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && diagnostics == "" {
			diagnostics = err.Error()
		}
		return crop.EncodeError(tool, diagnostics)
	}
	return nil
}

// lossyWriter drops write errors so a broken tee cannot fail the encode.
type lossyWriter struct {
	w io.Writer
}

func (l lossyWriter) Write(p []byte) (int, error) {
	_, _ = l.w.Write(p)
	return len(p), nil
}
