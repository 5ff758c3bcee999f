package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Every analyzed slide passed its confidence gate
	ExitFlagged = 1 // One or more slides were flagged
	ExitError   = 2 // Configuration or runtime error
)

// AnalysisFailureError indicates that the analysis ran to completion,
// but one or more slides were flagged as fallback or low-confidence.
type AnalysisFailureError struct {
	Message string
}

func (e *AnalysisFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var flaggedErr *AnalysisFailureError
		if errors.As(err, &flaggedErr) {
			os.Exit(ExitFlagged)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
