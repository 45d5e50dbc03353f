package quizforge

import (
	"log"
	"os"
)

var (
	verboseMode bool
	logger      = log.New(os.Stderr, "quizforge: ", log.LstdFlags)
)

// SetVerbose toggles debug logging for the whole package
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// VerboseLog writes a debug line when verbose mode is enabled
func VerboseLog(format string, v ...interface{}) {
	if verboseMode {
		logger.Printf(format, v...)
	}
}
