package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/foodhub/foodhub/internal/wizard"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Command completed
	ExitCancelled = 1 // Interactive form was cancelled
	ExitError     = 2 // Configuration, dataset or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, wizard.ErrAborted):
		return ExitCancelled
	default:
		return ExitError
	}
}
