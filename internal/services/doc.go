// Package services defines shared helpers consumed by the crop pipeline and
// the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request identifiers and pipeline stage names
//     for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     validation problems or external tool faults, and ExitCode which maps
//     them to process exit statuses.
//
// Use these helpers when adding new steps so error handling and log fields
// stay uniform.
package services
