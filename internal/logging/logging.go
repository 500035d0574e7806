package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to logPath. Debug mirrors every line to
// stderr. With no path and no debug, log output is discarded.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if debug {
		writers = append(writers, os.Stderr)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(os.Stderr)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogQuery records one retrieval with its results encoded as JSON.
func LogQuery(queryID, query string, results any) {
	log.Println(buildQueryMessage(queryID, query, results))
}

func buildQueryMessage(queryID, query string, results any) string {
	id := strings.TrimSpace(queryID)
	if id == "" {
		id = "unknown"
	}
	parts := []string{"[QUERY]"}
	parts = append(parts, fmt.Sprintf("id=%s", id))
	parts = append(parts, fmt.Sprintf("query=%q", strings.TrimSpace(query)))
	parts = append(parts, fmt.Sprintf("results=%s", formatPayload(results)))
	return strings.Join(parts, " ")
}

// formatPayload renders results as JSON, falling back to %v when they
// cannot be marshaled.
func formatPayload(results any) string {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Sprintf("%v", results)
	}
	return string(data)
}
