package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Command completed
	ExitNoMatches = 1 // recommend found nothing for the requirements
	ExitError     = 2 // Configuration or runtime error
)

// NoMatchesError indicates that the catalog loaded and was scored, but no
// record satisfied the requirements.
type NoMatchesError struct {
	Message string
}

func (e *NoMatchesError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var noMatches *NoMatchesError
		if errors.As(err, &noMatches) {
			os.Exit(ExitNoMatches)
		}
		os.Exit(ExitError)
	}
}
