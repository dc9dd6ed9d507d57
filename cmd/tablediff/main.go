// Command tablediff compares expected tables with actual data and prints a
// marked, column-aligned report of the differences.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tablediff/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
