package crop

import (
	"math"
	"path/filepath"
	"strings"
)

// fullRangeEpsilon is how close (seconds) a trim edge must be to the source
// bounds to count as untrimmed.
const fullRangeEpsilon = 0.001

// SourceInfo is what is known about the input before encoding. Zero fields
// mean unknown.
type SourceInfo struct {
	Width    uint32
	Height   uint32
	Duration float64
}

// ApplyDefaults fills the parts of req a caller left empty: a zero-sized crop
// covers the whole source frame, a zero-sized output keeps the crop size,
// an empty format becomes DefaultFormat and an empty output path becomes
// cropped.<format> next to the input. A trim spanning the whole source is
// dropped. Fields that cannot be derived are left untouched.
func ApplyDefaults(req Request, src SourceInfo) Request {
	if req.Crop.Width == 0 && req.Crop.Height == 0 && src.Width > 0 && src.Height > 0 {
		req.Crop = Rect{Width: src.Width, Height: src.Height}
	}
	if req.Output.Width == 0 && req.Output.Height == 0 && req.Crop.Width > 0 && req.Crop.Height > 0 {
		req.Output.Width = MakeEven(req.Crop.Width)
		req.Output.Height = MakeEven(req.Crop.Height)
	}
	if strings.TrimSpace(req.Output.Format) == "" {
		req.Output.Format = DefaultFormat
	}
	if strings.TrimSpace(req.OutputPath) == "" && req.InputPath != "" {
		req.OutputPath = DefaultOutputPath(req.InputPath, req.Output.Format)
	}
	req.Trim = ElideFullTrim(req.Trim, src.Duration)
	return req
}

// DefaultOutputPath returns cropped.<format> in the input's directory.
func DefaultOutputPath(inputPath, format string) string {
	ext := FormatKey(strings.TrimSpace(format))
	if ext == "" {
		ext = DefaultFormat
	}
	return filepath.Join(filepath.Dir(inputPath), "cropped."+ext)
}

// ElideFullTrim returns nil when trim covers the whole source so no seek is
// emitted. With an unknown duration the trim is returned unchanged.
func ElideFullTrim(trim *TrimRange, duration float64) *TrimRange {
	if trim == nil || !(duration > 0) {
		return trim
	}
	if math.Abs(trim.Start) <= fullRangeEpsilon && math.Abs(trim.End-duration) <= fullRangeEpsilon {
		return nil
	}
	return trim
}
