package smoke

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/scout/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Scout Discovery Smoke Tool
==========================

A concurrent tool for exercising the Scout discovery service end to end.

Usage:
  go run cmd/scout-smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of sync discovery requests to issue (default 200)
  -sessions int
        Number of async sessions to run (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for test output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/scout-smoke/main.go

  # Heavier sync load against a staging host
  go run cmd/scout-smoke/main.go -requests 5000 -workers 16 -url http://staging:9080

  # Async sessions only
  go run cmd/scout-smoke/main.go -requests 0 -sessions 50
`)
}
