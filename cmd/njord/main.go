package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mjovanc/njord/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// CommandErrors were already reported by the command's Printer.
		var cmdErr *cli.CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintf(os.Stderr, "njord: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
