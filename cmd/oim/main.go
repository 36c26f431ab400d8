// Command oim runs the online influence-maximization engine's CLI modes.
package main

import (
	"os"

	"github.com/gilchrisn/oim/internal/cli"
)

func main() {
	os.Exit(cli.RunCLI(os.Args[1:]))
}
