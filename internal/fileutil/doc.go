// Package fileutil holds filesystem guards the CLI applies around a crop:
// refusing to overwrite the source in place and keeping two vidcrop processes
// from writing the same output file at once.
package fileutil
