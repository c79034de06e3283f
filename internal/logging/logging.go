// Package logging is a file-backed debug log. The TUI owns the terminal, so
// nothing here ever writes to stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar enables debug logging when set to "1"
const EnvVar = "CONSTRUCTTRACK_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
)

func init() {
	if os.Getenv(EnvVar) == "1" {
		path := filepath.Join(os.TempDir(), "constructtrack-debug.log")
		logFile, _ = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

// Enabled reports whether debug output is being written
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logFile != nil
}

// SetOutput redirects debug output to f. Passing nil disables logging.
func SetOutput(f *os.File) {
	mu.Lock()
	defer mu.Unlock()
	logFile = f
}

// Debugf appends a timestamped line to the debug log.
// Network commands call it from their own goroutines.
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return
	}
	fmt.Fprintf(logFile, "%s "+format+"\n", append([]interface{}{time.Now().Format(time.RFC3339)}, args...)...)
	logFile.Sync()
}
