// Package logger provides leveled component logging for netstate.
//
// Log lines go to stderr so that command output on stdout stays machine
// readable. When a log file is configured, lines are written to both.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel converts a string to a LogLevel, defaulting to WARN
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return WARN
	}
}

// Logger writes leveled messages tagged with a component name
type Logger struct {
	component string
	level     LogLevel
	output    io.Writer
	mu        *sync.Mutex
}

var (
	globalLogger *Logger
	globalFile   *os.File
	globalMu     sync.RWMutex
)

// Initialize sets up the global logger. An empty logFile logs to stderr only.
func Initialize(logFile string, level string) error {
	var output io.Writer = os.Stderr
	var file *os.File

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		output = io.MultiWriter(os.Stderr, f)
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	if globalFile != nil {
		globalFile.Close()
	}
	globalFile = file
	globalLogger = &Logger{
		component: "main",
		level:     ParseLogLevel(level),
		output:    output,
		mu:        &sync.Mutex{},
	}

	return nil
}

// Close releases the log file opened by Initialize
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalFile == nil {
		return nil
	}
	err := globalFile.Close()
	globalFile = nil
	if globalLogger != nil {
		globalLogger.output = os.Stderr
	}
	return err
}

// New creates a logger writing to w, used where the global setup is not wanted
func New(component string, level LogLevel, w io.Writer) *Logger {
	return &Logger{
		component: component,
		level:     level,
		output:    w,
		mu:        &sync.Mutex{},
	}
}

// NewComponentLogger creates a new logger for a specific component
func NewComponentLogger(component string) *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	if globalLogger == nil {
		return New(component, WARN, os.Stderr)
	}

	return &Logger{
		component: component,
		level:     globalLogger.level,
		output:    globalLogger.output,
		mu:        globalLogger.mu,
	}
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	caller := "???"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	entry := fmt.Sprintf("%s [%s] [%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"), level.String(), l.component, caller,
		fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(entry))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// ErrorWithContext logs an error with additional context
func (l *Logger) ErrorWithContext(err error, context string, args ...interface{}) {
	l.log(ERROR, "%s: %v", fmt.Sprintf(context, args...), err)
}

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{
		component: fmt.Sprintf("%s[%s=%s]", l.component, key, value),
		level:     l.level,
		output:    l.output,
		mu:        l.mu,
	}
}

// Level returns the minimum level the logger writes
func (l *Logger) Level() LogLevel {
	return l.level
}

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Debug logs through the global logger
func Debug(format string, args ...interface{}) {
	if l := global(); l != nil {
		l.Debug(format, args...)
	} else {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs through the global logger
func Info(format string, args ...interface{}) {
	if l := global(); l != nil {
		l.Info(format, args...)
	} else {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs through the global logger
func Warn(format string, args ...interface{}) {
	if l := global(); l != nil {
		l.Warn(format, args...)
	} else {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs through the global logger
func Error(format string, args ...interface{}) {
	if l := global(); l != nil {
		l.Error(format, args...)
	} else {
		log.Printf("[ERROR] "+format, args...)
	}
}
