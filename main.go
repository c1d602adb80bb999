package main

import (
	"log"
	"os"
	"strings"

	"codesnap/cmd"
	"codesnap/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	logger, err := zap.NewProduction(zap.Fields(
		zap.String("appName", "codesnap"),
		zap.String("appVersion", version.Version),
	))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	err = cmd.Execute(logger)

	// Sync fails with "invalid argument" when stderr is neither a terminal
	// nor a regular file (e.g. /dev/null on some platforms).
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
