// Package crop turns a declarative crop/trim/output request into the ffmpeg
// argument vector that performs it.
//
// Everything here is pure: geometry is coerced to encoder-safe even sizes,
// the crop+scale filter graph is built with clamps that ffmpeg evaluates
// against the decoded frame, and the codec arguments come from a static
// per-format table. Locating and running the encoder live in the deps and
// encoding packages.
package crop
