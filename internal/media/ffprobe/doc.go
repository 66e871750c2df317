// Package ffprobe inspects source media so the CLI can fill in request
// defaults (full-frame crop, source-sized output, trim elision) and print a
// stream summary. The crop core never depends on it.
package ffprobe
