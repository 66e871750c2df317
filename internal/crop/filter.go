package crop

import (
	"strconv"
	"strings"
)

// Escaped argument separator inside a filter option value. A bare comma would
// end the crop filter and start a new one in the chain.
const exprSep = `\,`

// BuildFilter returns the crop+scale filter graph for normalized geometry.
// The crop size and origin are clamped against in_w/in_h, which ffmpeg
// resolves from the decoded frame, so a rectangle larger than the source is
// shrunk and shifted inside it instead of failing the encode.
func BuildFilter(rect Rect, out OutputSettings) string {
	cw := uint(rect.Width)
	ch := uint(rect.Height)

	width := call("min", num(cw), "in_w")
	height := call("min", num(ch), "in_h")
	x := call("min", call("max", num(uint(rect.X)), "0"), "in_w-"+width)
	y := call("min", call("max", num(uint(rect.Y)), "0"), "in_h-"+height)

	var b strings.Builder
	b.WriteString("crop=")
	b.WriteString("w=" + width)
	b.WriteString(":h=" + height)
	b.WriteString(":x=" + x)
	b.WriteString(":y=" + y)
	b.WriteString(",scale=")
	b.WriteString(num(uint(out.Width)))
	b.WriteByte(':')
	b.WriteString(num(uint(out.Height)))
	return b.String()
}

func call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, exprSep) + ")"
}

func num(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
