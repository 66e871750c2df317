// Package config loads, normalizes, and validates vidcrop configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the FFMPEG_PATH and FFPROBE_PATH
// environment overrides. Only the CLI reads configuration; the crop core takes
// everything it needs as explicit arguments.
package config
