package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Logger provides structured JSON logging to two sinks: a console stream
// for INFO and above, and an optional log file capturing all levels.
type Logger struct {
	mu           sync.Mutex
	console      io.Writer
	file         io.Writer
	closer       io.Closer
	consoleLevel Level
	fileLevel    Level
}

// New returns a logger that writes INFO and above to console.
// Attach a file sink with AttachFile to also capture DEBUG entries.
func New(console io.Writer) *Logger {
	return &Logger{
		console:      console,
		consoleLevel: INFO,
		fileLevel:    DEBUG,
	}
}

var defaultLogger = New(os.Stderr)

// Default returns the process-wide logger for explicit injection into components.
func Default() *Logger { return defaultLogger }

// Setup attaches a log file to the default logger.
func Setup(path string) error { return defaultLogger.AttachFile(path) }

// Close closes the default logger's file sink.
func Close() error { return defaultLogger.Close() }

// SetConsoleLevel sets the minimum level written to the console.
func SetConsoleLevel(l Level) { defaultLogger.consoleLevel = l }

// Debug emits a DEBUG-level structured log entry.
func Debug(msg string, fields ...interface{}) { defaultLogger.log(DEBUG, msg, fields...) }

// Info emits an INFO-level structured log entry.
func Info(msg string, fields ...interface{}) { defaultLogger.log(INFO, msg, fields...) }

// Warn emits a WARN-level structured log entry.
func Warn(msg string, fields ...interface{}) { defaultLogger.log(WARN, msg, fields...) }

// Error emits an ERROR-level structured log entry.
func Error(msg string, fields ...interface{}) { defaultLogger.log(ERROR, msg, fields...) }

// AttachFile opens path in append mode and uses it as the detailed sink.
// The directory is created if absent.
func (l *Logger) AttachFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file = f
	l.closer = f
	return nil
}

// Close closes the file sink if one was attached.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.file = nil
	l.closer = nil
	return err
}

// Debug emits a DEBUG-level structured log entry.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(DEBUG, msg, fields...) }

// Info emits an INFO-level structured log entry.
func (l *Logger) Info(msg string, fields ...interface{}) { l.log(INFO, msg, fields...) }

// Warn emits a WARN-level structured log entry.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.log(WARN, msg, fields...) }

// Error emits an ERROR-level structured log entry.
func (l *Logger) Error(msg string, fields ...interface{}) { l.log(ERROR, msg, fields...) }

func (l *Logger) log(level Level, msg string, fields ...interface{}) {
	entry := map[string]interface{}{
		"time":  time.Now().UTC().Format(time.RFC3339),
		"level": levelNames[level],
		"msg":   msg,
	}

	// Parse key-value pairs from fields
	for i := 0; i < len(fields)-1; i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		entry[key] = fmt.Sprintf("%v", fields[i+1])
	}

	data, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil && level >= l.fileLevel {
		fmt.Fprintln(l.file, string(data))
	}
	if l.console != nil && level >= l.consoleLevel {
		fmt.Fprintln(l.console, string(data))
	}
}
