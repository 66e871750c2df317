package crop

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultFormat is the container used when a request leaves the format empty.
const DefaultFormat = "mp4"

// KnownFormats lists the containers offered to users. Only webm, avi and mov
// have dedicated codec settings; the rest share the H.264/AAC default.
var KnownFormats = []string{"mp4", "mov", "avi", "mkv", "webm"}

var h264AAC = []string{
	"-c:v", "libx264",
	"-preset", "veryfast",
	"-crf", "18",
	"-pix_fmt", "yuv420p",
	"-c:a", "aac",
}

var formatTable = map[string][]string{
	"webm": {
		"-c:v", "libvpx-vp9",
		"-b:v", "0",
		"-crf", "32",
		"-c:a", "libopus",
	},
	"avi": {
		"-c:v", "mpeg4",
		"-q:v", "3",
		"-c:a", "mp3",
	},
	"mov": append(slices.Clone(h264AAC), "-movflags", "+faststart"),
}

// FormatKey folds a user-supplied format name to its table key.
func FormatKey(format string) string {
	return cases.Lower(language.Und).String(format)
}

// FormatArgs returns the codec and container arguments for format. Unknown
// formats fall back to H.264/AAC rather than failing, so a typo still yields
// a playable file. The returned slice is a fresh copy.
func FormatArgs(format string) []string {
	if args, ok := formatTable[FormatKey(format)]; ok {
		return slices.Clone(args)
	}
	return slices.Clone(h264AAC)
}

// IsDedicatedFormat reports whether format has its own table entry.
func IsDedicatedFormat(format string) bool {
	_, ok := formatTable[FormatKey(format)]
	return ok
}
