package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/hostbind/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// ExitErrors have already been reported through the output formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "hostbind: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
