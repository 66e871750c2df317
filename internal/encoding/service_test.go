package encoding_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidcrop/internal/crop"
	"vidcrop/internal/deps"
	"vidcrop/internal/encoding"
	"vidcrop/internal/logging"
	"vidcrop/internal/services"
)

func stubLocator(path string) *deps.Locator {
	loc := deps.NewFFmpegLocator("")
	loc.Getenv = func(key string) string {
		if key == deps.FFmpegEnvVar {
			return path
		}
		return ""
	}
	return loc
}

func sampleRequest(dir string) crop.Request {
	return crop.Request{
		InputPath:  filepath.Join(dir, "in.mp4"),
		OutputPath: filepath.Join(dir, "out.mov"),
		Crop:       crop.Rect{X: 10, Y: 20, Width: 640, Height: 360},
		Output:     crop.OutputSettings{Width: 1280, Height: 720, Format: "mov"},
	}
}

func TestServicePlanUsesLocatedBinary(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "exit 0")
	svc := encoding.NewService(stubLocator(stub))

	cmd, loc, err := svc.Plan(sampleRequest(t.TempDir()))
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if cmd.Binary != stub {
		t.Fatalf("binary = %q, want %q", cmd.Binary, stub)
	}
	if loc.Source != deps.SourceEnv || !loc.Found {
		t.Fatalf("unexpected location %+v", loc)
	}
	if cmd.Args[0] != "-y" {
		t.Fatalf("first arg = %q", cmd.Args[0])
	}
}

func TestServiceCropVideoRunsEncoder(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStub(t, "ffmpeg", fmt.Sprintf("printf '%%s\\n' \"$@\" > %q", argsFile))

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &logs})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := encoding.NewService(stubLocator(stub), encoding.WithLogger(logger))

	req := sampleRequest(dir)
	if err := svc.CropVideo(context.Background(), req); err != nil {
		t.Fatalf("CropVideo returned error: %v", err)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	args := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if args[len(args)-1] != req.OutputPath {
		t.Fatalf("output path should be last, got %q", args)
	}
	if !strings.Contains(string(data), "+faststart") {
		t.Fatalf("mov arguments missing: %q", args)
	}

	out := logs.String()
	if !strings.Contains(out, `"msg":"encode complete"`) {
		t.Fatalf("expected completion log, got %s", out)
	}
	if !strings.Contains(out, `"request_id":"`) || !strings.Contains(out, `"component":"encoding"`) {
		t.Fatalf("expected request_id and component fields, got %s", out)
	}
}

func TestServiceCropVideoReportsEncodeFailure(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo 'Invalid data found when processing input' >&2\nexit 1")
	svc := encoding.NewService(stubLocator(stub), encoding.WithDiagnosticLines(4))

	err := svc.CropVideo(context.Background(), sampleRequest(t.TempDir()))
	if !errors.Is(err, crop.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	if err.Error() != "ffmpeg failed:\nInvalid data found when processing input" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if services.ExitCode(err) != services.ExitExternalTool {
		t.Fatalf("exit code = %d", services.ExitCode(err))
	}
}

func TestServiceCropVideoRejectsInvalidTrimWithoutSpawning(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "spawned")
	stub := writeStub(t, "ffmpeg", fmt.Sprintf("touch %q", marker))
	svc := encoding.NewService(stubLocator(stub))

	req := sampleRequest(dir)
	req.Trim = &crop.TrimRange{Start: 5, End: 2}
	err := svc.CropVideo(context.Background(), req)
	if !errors.Is(err, crop.ErrInvalidTrim) {
		t.Fatalf("expected ErrInvalidTrim, got %v", err)
	}
	if err.Error() != "trim duration must be greater than 0" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, statErr := os.Stat(marker); !os.IsNotExist(statErr) {
		t.Fatal("encoder must not run for an invalid request")
	}
}

func TestServiceStderrTee(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo 'frame=  10' >&2")
	var tee bytes.Buffer
	svc := encoding.NewService(stubLocator(stub), encoding.WithStderrTee(&tee))
	if err := svc.CropVideo(context.Background(), sampleRequest(t.TempDir())); err != nil {
		t.Fatalf("CropVideo returned error: %v", err)
	}
	if !strings.Contains(tee.String(), "frame=  10") {
		t.Fatalf("tee = %q", tee.String())
	}
}
