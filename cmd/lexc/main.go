// Command lexc compiles constructed-language lexicons.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/lexc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		code := cli.GetExitCode(err)
		// Failures have already been reported on stdout.
		if code != cli.ExitFailure {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}
