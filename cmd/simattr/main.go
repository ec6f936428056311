// Command simattr is the CLI for inspecting, validating and migrating
// simulation-object attribute schemas.
package main

import (
	"os"

	"github.com/roach88/simattr/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
