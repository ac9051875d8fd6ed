package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger for debug messages
var (
	mu        sync.Mutex
	isVerbose = false
	logFile   *os.File
)

// Log prints debug messages to the log file if verbose mode is enabled
func Log(text string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if isVerbose && logFile != nil {
		fmt.Fprintf(logFile, "%s "+text+"\n", append([]interface{}{time.Now().Format("15:04:05.000")}, args...)...)
	}
}

// DefaultLogPath returns the per-day log file in the temp directory.
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("daylog_%s.log", time.Now().Format("2006-01-02")))
}

// InitLogger initializes the logging system. An empty path selects
// DefaultLogPath. The file is appended to so several runs on the same day
// share one log.
func InitLogger(verbose bool, path string) error {
	mu.Lock()
	isVerbose = verbose
	mu.Unlock()

	if !verbose {
		return nil
	}
	if path == "" {
		path = DefaultLogPath()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}

	mu.Lock()
	logFile = f
	mu.Unlock()

	Log("Verbose logging enabled")
	return nil
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	isVerbose = false
}
