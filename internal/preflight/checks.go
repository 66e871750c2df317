package preflight

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"vidcrop/internal/config"
	"vidcrop/internal/deps"
)

const versionTimeout = 5 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckEncoderVersion runs "<tool> -version" and reports the first line.
func CheckEncoderVersion(ctx context.Context, name string, loc *deps.Locator) Result {
	if loc == nil {
		return Result{Name: name, Detail: "no locator"}
	}
	found := loc.Locate()

	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(checkCtx, found.Path, "-version").Output()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s -version failed (%v)", found.Path, err)}
	}
	line := firstLine(string(output))
	if line == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s printed no version", found.Path)}
	}
	return Result{Name: name, Passed: true, Detail: line}
}

// CheckSystemDeps evaluates the binaries a crop needs. ffprobe is optional:
// without it the CLI only loses request defaults and `vidcrop probe`.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	requirements := []deps.Requirement{
		deps.RequirementFor("FFmpeg", "Required for encoding", cfg.FFmpegLocator().Locate(), false),
		deps.RequirementFor("FFprobe", "Used to fill request defaults", cfg.FFprobeLocator().Locate(), true),
	}
	return deps.CheckBinaries(requirements)
}

func firstLine(text string) string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}
