package main

import (
	"os"

	"github.com/parallax-dev/parallax/cmd"
	"github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.UserError("%v", err)
		os.Exit(errors.GetExitCode(err))
	}
}
