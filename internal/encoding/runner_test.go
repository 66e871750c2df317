package encoding_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"vidcrop/internal/crop"
	"vidcrop/internal/encoding"
	"vidcrop/internal/services"
)

func writeStub(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestRunSucceedsOnZeroExit(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo noise >&2\nexit 0")
	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunPassesArgumentsVerbatim(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStub(t, "ffmpeg", fmt.Sprintf("for a in \"$@\"; do printf '%%s\\n' \"$a\" >> %q; done", argsFile))

	args := []string{"-vf", `crop=w=min(10\,in_w)`, "out file.mp4"}
	if err := encoding.Run(context.Background(), crop.Command{Binary: stub, Args: args}, encoding.RunOptions{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	got := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if strings.Join(got, "|") != strings.Join(args, "|") {
		t.Fatalf("args = %q, want %q", got, args)
	}
}

func TestRunReportsLastTwelveStderrLines(t *testing.T) {
	stub := writeStub(t, "ffmpeg", `i=1
while [ $i -le 50 ]; do
  echo "line $i" >&2
  i=$((i+1))
done
exit 1`)

	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !errors.Is(err, crop.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}

	var want strings.Builder
	want.WriteString("ffmpeg failed:\n")
	for i := 39; i <= 50; i++ {
		fmt.Fprintf(&want, "line %d", i)
		if i < 50 {
			want.WriteByte('\n')
		}
	}
	if err.Error() != want.String() {
		t.Fatalf("message mismatch:\n got %q\nwant %q", err.Error(), want.String())
	}
}

func TestRunHonoursDiagnosticLineCount(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo a >&2\necho b >&2\necho c >&2\nexit 3")
	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{DiagnosticLines: 2})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "ffmpeg failed:\nb\nc" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunEmptyStderrStillFails(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "exit 1")
	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{})
	if !errors.Is(err, crop.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	if err.Error() != "ffmpeg failed:\n" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunLaunchFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-ffmpeg")
	err := encoding.Run(context.Background(), crop.Command{Binary: missing}, encoding.RunOptions{})
	if err == nil {
		t.Fatal("expected launch error")
	}
	if !errors.Is(err, crop.ErrLaunchFailure) {
		t.Fatalf("expected ErrLaunchFailure, got %v", err)
	}
	if errors.Is(err, crop.ErrEncodeFailure) {
		t.Fatal("launch failure must not be reported as encode failure")
	}
	if !strings.HasPrefix(err.Error(), "failed to run ffmpeg: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunTeesStderr(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo 'frame=1' >&2\necho 'frame=2' >&2")
	var tee bytes.Buffer
	if err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{Tee: &tee}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if tee.String() != "frame=1\nframe=2\n" {
		t.Fatalf("tee = %q", tee.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRunIgnoresTeeWriteErrors(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo hello >&2\nexit 0")
	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{Tee: failingWriter{}})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunWithFailingTeeKeepsDiagnostics(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo broken >&2\nexit 1")
	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{Tee: failingWriter{}})
	if !errors.Is(err, crop.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	if err.Error() != "ffmpeg failed:\nbroken" {
		t.Fatalf("unexpected error %q", err.Error())
	}
}

func TestRunUsesToolNameInMessages(t *testing.T) {
	stub := writeStub(t, "encoder", "echo bad >&2\nexit 1")
	err := encoding.Run(context.Background(), crop.Command{Binary: stub}, encoding.RunOptions{Tool: "avconv"})
	if err == nil || err.Error() != "avconv failed:\nbad" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSetCommandForTestsSubstitutesProcess(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "exit 0")
	var gotName string
	var gotArgs []string
	restore := encoding.SetCommandForTests(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		return exec.CommandContext(ctx, stub)
	})
	defer restore()

	cmd := crop.Command{Binary: "/opt/bin/ffmpeg", Args: []string{"-y", "out.mp4"}}
	if err := encoding.Run(context.Background(), cmd, encoding.RunOptions{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if gotName != "/opt/bin/ffmpeg" || strings.Join(gotArgs, " ") != "-y out.mp4" {
		t.Fatalf("unexpected invocation %q %q", gotName, gotArgs)
	}
}
