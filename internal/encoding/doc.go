// Package encoding runs crop requests through ffmpeg.
//
// Service.CropVideo is the single entry point used by the CLI (and by any
// other shell embedding vidcrop): it resolves the encoder with the deps
// locator, assembles the argument vector with the crop package, and runs the
// process synchronously. Failures come back as *crop.Error values whose text
// is ready for the user; a non-zero exit carries only the last lines of
// ffmpeg's stderr.
//
// There is no progress reporting, retry or cleanup of partial output here.
// Callers that need a timeout bring their own context.
package encoding
