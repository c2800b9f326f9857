package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
)

// LogLevel defines the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// Color codes for console output
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	purple = "\033[35m"
)

// Logger is a custom logging structure
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
}

// New creates a new Logger instance
func New(level LogLevel) *Logger {
	return &Logger{
		level:  level,
		output: os.Stdout,
	}
}

// SetOutput redirects log output, mainly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// getCallerInfo retrieves file and line of the caller
func getCallerInfo(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", 0
	}

	// Trim the full path to just the last few path components
	parts := strings.Split(file, "/")
	if len(parts) > 3 {
		file = strings.Join(parts[len(parts)-3:], "/")
	}

	return file, line
}

// colorForLevel returns the color based on log level
func colorForLevel(level LogLevel) string {
	switch level {
	case DEBUG:
		return blue
	case INFO:
		return green
	case WARN:
		return yellow
	case ERROR:
		return red
	case FATAL:
		return purple
	default:
		return reset
	}
}

// log writes a formatted log message
func (l *Logger) log(level LogLevel, msg string) {
	if level < l.level {
		return
	}

	// Skip 3 stack frames to reach the caller of the public method
	file, line := getCallerInfo(3)

	color := colorForLevel(level)

	logEntry := fmt.Sprintf("%s[%s]%s %s:%d - %s\n",
		color,
		[]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}[level],
		reset,
		file,
		line,
		msg,
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprint(l.output, logEntry)

	if level == FATAL {
		os.Exit(1)
	}
}

// formatKeyvals renders structured pairs as " key=value" suffixes.
func formatKeyvals(keyvals ...interface{}) string {
	if len(keyvals) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprintf("%v", keyvals[i])
		value := "MISSING"
		if i+1 < len(keyvals) {
			value = fmt.Sprintf("%v", keyvals[i+1])
		}
		fmt.Fprintf(&b, " %s=%s", key, value)
	}
	return b.String()
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, v...))
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, v...))
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, v...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(FATAL, fmt.Sprintf(format, v...))
}

// Debugw logs a debug message with structured key-value pairs
func (l *Logger) Debugw(msg string, keyvals ...interface{}) {
	l.log(DEBUG, msg+formatKeyvals(keyvals...))
}

// Infow logs an info message with structured key-value pairs
func (l *Logger) Infow(msg string, keyvals ...interface{}) {
	l.log(INFO, msg+formatKeyvals(keyvals...))
}

// Warnw logs a warning message with structured key-value pairs
func (l *Logger) Warnw(msg string, keyvals ...interface{}) {
	l.log(WARN, msg+formatKeyvals(keyvals...))
}

// Errorw logs an error message with structured key-value pairs
func (l *Logger) Errorw(msg string, keyvals ...interface{}) {
	l.log(ERROR, msg+formatKeyvals(keyvals...))
}

// Fatalw logs a fatal message with structured key-value pairs and exits
func (l *Logger) Fatalw(msg string, keyvals ...interface{}) {
	l.log(FATAL, msg+formatKeyvals(keyvals...))
}
