package encoding

import (
	"context"
	"os/exec"
)

// execCommand builds the encoder process. It is a package-level variable so
// tests can substitute a stub.
var execCommand = exec.CommandContext

// SetCommandForTests overrides process construction during tests.
func SetCommandForTests(fn func(context.Context, string, ...string) *exec.Cmd) func() {
	previous := execCommand
	execCommand = fn
	return func() {
		execCommand = previous
	}
}
