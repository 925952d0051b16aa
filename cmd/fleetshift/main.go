// Command fleetshift compares the total cost of ownership of diesel and
// electric truck fleets.
package main

import (
	"fmt"
	"os"

	"github.com/fleetshift/fleetshift/internal/cli"
	"github.com/fleetshift/fleetshift/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run builds and executes the root command.
func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}
