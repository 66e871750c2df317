// Package main hosts the vidcrop CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations (or a JSON request
// document) into crop requests for the encoding service, and exposes the
// encoder lookup, source probing and readiness checks behind it. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: behaviour belongs in the internal packages; the
// commands here only collect input and render results.
package main
