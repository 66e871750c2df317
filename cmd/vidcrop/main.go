package main

import (
	"fmt"
	"os"

	"vidcrop/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(services.ExitCode(err))
	}
}
