package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment variables that point straight at an encoder binary.
const (
	FFmpegEnvVar  = "FFMPEG_PATH"
	FFprobeEnvVar = "FFPROBE_PATH"
)

// DefaultSearchDepth is how many directories, starting at the executable's
// own, are checked for a bin/ subdirectory.
const DefaultSearchDepth = 5

// Sources reported in Location.Source.
const (
	SourceEnv        = "env"
	SourceResources  = "resources"
	SourceExecutable = "executable"
	SourceAncestor   = "ancestor"
	SourceFallback   = "fallback"
)

// Location is the outcome of a binary lookup. When Found is false Path is the
// bare command name and resolution is left to PATH at spawn time.
type Location struct {
	Path   string
	Source string
	Found  bool
}

// Candidate is one path inspected during a lookup.
type Candidate struct {
	Source string
	Path   string
	Exists bool
}

// Locator finds a bundled tool such as ffmpeg across installed, portable and
// development layouts. The zero value is not usable; see NewFFmpegLocator.
type Locator struct {
	Tool        string
	EnvVar      string
	ResourceDir string
	SearchDepth int

	GOOS   string
	GOARCH string

	Getenv     func(string) string
	Executable func() (string, error)
	Stat       func(string) (os.FileInfo, error)
}

// NewFFmpegLocator returns a locator for ffmpeg. An empty resourceDir uses the
// platform default derived from the running executable.
func NewFFmpegLocator(resourceDir string) *Locator {
	return newLocator("ffmpeg", FFmpegEnvVar, resourceDir)
}

// NewFFprobeLocator returns a locator for ffprobe using the same layout rules.
func NewFFprobeLocator(resourceDir string) *Locator {
	return newLocator("ffprobe", FFprobeEnvVar, resourceDir)
}

func newLocator(tool, envVar, resourceDir string) *Locator {
	return &Locator{
		Tool:        tool,
		EnvVar:      envVar,
		ResourceDir: strings.TrimSpace(resourceDir),
		SearchDepth: DefaultSearchDepth,
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		Getenv:      os.Getenv,
		Executable:  os.Executable,
		Stat:        os.Stat,
	}
}

// Locate returns the first existing candidate, or the bare tool name.
// It never fails; a missing binary surfaces when the process is spawned.
func (l *Locator) Locate() Location {
	loc, _ := l.search(false)
	return loc
}

// Trace is Locate plus every candidate inspected up to and including the match.
func (l *Locator) Trace() (Location, []Candidate) {
	return l.search(true)
}

type tier struct {
	source     string
	candidates func() []string
}

func (l *Locator) search(record bool) (Location, []Candidate) {
	var seen []Candidate
	for _, t := range l.tiers() {
		for _, path := range t.candidates() {
			ok := l.exists(path)
			if record {
				seen = append(seen, Candidate{Source: t.source, Path: path, Exists: ok})
			}
			if ok {
				return Location{Path: path, Source: t.source, Found: true}, seen
			}
		}
	}
	return Location{Path: l.Tool, Source: SourceFallback}, seen
}

func (l *Locator) tiers() []tier {
	exeDir := l.executableDir()
	resources := l.resourceDir(exeDir)
	return []tier{
		{SourceEnv, l.envCandidates},
		{SourceResources, func() []string { return l.binCandidates(resources) }},
		{SourceExecutable, func() []string { return l.joinNames(exeDir) }},
		{SourceAncestor, func() []string { return l.ancestorCandidates(exeDir, resources) }},
	}
}

func (l *Locator) envCandidates() []string {
	if l.EnvVar == "" || l.Getenv == nil {
		return nil
	}
	value := strings.TrimSpace(l.Getenv(l.EnvVar))
	if value == "" {
		return nil
	}
	return []string{value}
}

func (l *Locator) binCandidates(dir string) []string {
	if dir == "" {
		return nil
	}
	return l.joinNames(filepath.Join(dir, "bin"))
}

func (l *Locator) joinNames(dir string) []string {
	if dir == "" {
		return nil
	}
	names := l.BinaryNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

// ancestorCandidates walks up from exeDir. The resource directory was already
// checked by its own tier and is skipped, but still counts toward the depth.
func (l *Locator) ancestorCandidates(exeDir, resources string) []string {
	if exeDir == "" {
		return nil
	}
	if resources != "" {
		resources = filepath.Clean(resources)
	}
	var out []string
	dir := exeDir
	for i := 0; i < l.SearchDepth; i++ {
		if filepath.Clean(dir) != resources {
			out = append(out, l.binCandidates(dir)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return out
}

func (l *Locator) executableDir() string {
	if l.Executable == nil {
		return ""
	}
	exe, err := l.Executable()
	if err != nil || exe == "" {
		return ""
	}
	return filepath.Dir(exe)
}

func (l *Locator) resourceDir(exeDir string) string {
	if l.ResourceDir != "" {
		return l.ResourceDir
	}
	return DefaultResourceDir(exeDir, l.GOOS)
}

func (l *Locator) exists(path string) bool {
	if path == "" || l.Stat == nil {
		return false
	}
	_, err := l.Stat(path)
	return err == nil
}

// BinaryNames lists the file names tried in each directory: the plain tool
// name first, then the per-architecture sidecar name.
func (l *Locator) BinaryNames() []string {
	ext := ""
	if l.GOOS == "windows" {
		ext = ".exe"
	}
	names := []string{l.Tool + ext}
	if triple := TargetTriple(l.GOOS, l.GOARCH); triple != "" {
		names = append(names, l.Tool+"-"+triple+ext)
	}
	return names
}

// DefaultResourceDir is where bundled resources live for an executable in
// exeDir: Contents/Resources inside a macOS app bundle, the executable's own
// directory elsewhere.
func DefaultResourceDir(exeDir, goos string) string {
	if exeDir == "" {
		return ""
	}
	if goos == "darwin" {
		return filepath.Join(filepath.Dir(exeDir), "Resources")
	}
	return exeDir
}

// TargetTriple returns the sidecar target triple used when bundling
// per-architecture binaries, or "" for unsupported platforms.
func TargetTriple(goos, goarch string) string {
	arch := map[string]string{
		"amd64": "x86_64",
		"arm64": "aarch64",
		"386":   "i686",
	}[goarch]
	if arch == "" {
		return ""
	}
	switch goos {
	case "windows":
		return arch + "-pc-windows-msvc"
	case "darwin":
		if goarch == "386" {
			return ""
		}
		return arch + "-apple-darwin"
	case "linux":
		return arch + "-unknown-linux-gnu"
	default:
		return ""
	}
}
