package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidcrop/internal/services"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	ffmpeg     string
	ffprobe    string
	argsFile   string
}

// setupCLITestEnv writes a config pointing at stub ffmpeg/ffprobe scripts.
// The ffmpeg stub records its arguments one per line; ffprobeJSON, when set,
// is what the ffprobe stub prints.
func setupCLITestEnv(t *testing.T, ffmpegBody, ffprobeJSON string) *cliTestEnv {
	t.Helper()
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("FFPROBE_PATH", "")

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "vidcrop.toml"),
		ffmpeg:     filepath.Join(base, "bin", "ffmpeg"),
		ffprobe:    filepath.Join(base, "bin", "ffprobe"),
		argsFile:   filepath.Join(base, "ffmpeg-args.txt"),
	}
	if err := os.MkdirAll(filepath.Join(base, "bin"), 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}

	record := fmt.Sprintf("printf '%%s\\n' \"$@\" > %q\n", env.argsFile)
	writeScript(t, env.ffmpeg, record+ffmpegBody)
	if ffprobeJSON != "" {
		writeScript(t, env.ffprobe, "cat <<'JSON'\n"+ffprobeJSON+"\nJSON")
	}

	content := fmt.Sprintf("[encoder]\nffmpeg_path = %q\nffprobe_path = %q\n\n[logging]\nlevel = \"error\"\n", env.ffmpeg, env.ffprobe)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	if env != nil {
		args = append([]string{"--config", env.configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *cliTestEnv) recordedArgs(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.argsFile)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	if got := services.ExitCode(err); got != want {
		t.Fatalf("exit code = %d, want %d (err=%v)", got, want, err)
	}
}
