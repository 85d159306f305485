package main

import (
	"os"

	"github.com/guestctl/guestctl/cmd"
	"github.com/guestctl/guestctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
