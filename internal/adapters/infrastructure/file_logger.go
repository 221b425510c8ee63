package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"weathernotify.app/internal/ports"
)

// FileLoggerAdapter implements structured JSON-lines logging to a file
type FileLoggerAdapter struct {
	filePath string
	clock    clock.Clock
	mutex    sync.Mutex
}

// NewFileLoggerAdapter creates a new file logger adapter. A nil clock uses wall time.
func NewFileLoggerAdapter(logPath string, clk clock.Clock) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if clk == nil {
		clk = clock.NewClock()
	}

	return &FileLoggerAdapter{
		filePath: logPath,
		clock:    clk,
	}, nil
}

// Debug logs a debug message to file
func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry("DEBUG", msg, fields...)
}

// Info logs an info message to file
func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry("INFO", msg, fields...)
}

// Warn logs a warning message to file
func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry("WARN", msg, fields...)
}

// Error logs an error message to file
func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry("ERROR", msg, fields...)
}

func (f *FileLoggerAdapter) writeLogEntry(level, msg string, fields ...ports.Field) {
	logEntry := map[string]interface{}{
		"timestamp": f.clock.Now().Format(time.RFC3339),
		"level":     level,
		"message":   msg,
	}

	for _, field := range fields {
		logEntry[field.Key] = jsonValue(field.Value)
	}

	jsonData, err := json.Marshal(logEntry)
	if err != nil {
		jsonData, _ = json.Marshal(map[string]interface{}{
			"timestamp": logEntry["timestamp"],
			"level":     "ERROR",
			"message":   fmt.Sprintf("failed to marshal log entry %q: %v", msg, err),
		})
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.writeRawLog(string(jsonData))
}

// jsonValue renders values that encoding/json would flatten to {}
func jsonValue(value interface{}) interface{} {
	switch v := value.(type) {
	case error:
		return v.Error()
	case time.Duration:
		return v.String()
	case fmt.Stringer:
		if _, ok := value.(json.Marshaler); ok {
			return value
		}
		return v.String()
	default:
		return value
	}
}

func (f *FileLoggerAdapter) writeRawLog(data string) {
	file, err := os.OpenFile(f.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", closeErr)
		}
	}()

	if _, err := file.WriteString(data + "\n"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
