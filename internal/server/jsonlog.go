// jsonlog.go - Structured logging for background services.
//
// Request handlers log flat key=value lines through the access-log
// middleware; the janitor and bootstrap paths use this leveled logger,
// which switches to JSON when SPOOLD_LOG_FORMAT=json is set.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// LogLevel represents the severity of a log entry.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelRank = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

// Logger writes leveled, optionally JSON-formatted log entries.
type Logger struct {
	output     io.Writer
	minLevel   LogLevel
	enableJSON bool
}

type logEntry struct {
	Level   LogLevel       `json:"level"`
	Time    string         `json:"time"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// DefaultLogger is the process-wide background logger, configured from the
// environment at startup.
var DefaultLogger = &Logger{
	output:     os.Stdout,
	minLevel:   logLevelFromEnv(),
	enableJSON: os.Getenv("SPOOLD_LOG_FORMAT") == "json",
}

func logLevelFromEnv() LogLevel {
	switch os.Getenv("SPOOLD_LOG_LEVEL") {
	case "debug":
		return LogLevelDebug
	case "warn":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

func (l *Logger) log(level LogLevel, msg string, fields map[string]any, err error) {
	if logLevelRank[level] < logLevelRank[l.minLevel] {
		return
	}

	entry := logEntry{
		Level:   level,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Message: msg,
		Fields:  fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	if l.enableJSON {
		data, _ := json.Marshal(entry)
		fmt.Fprintln(l.output, string(data))
		return
	}

	fmt.Fprintf(l.output, "[%s] %s %s", entry.Level, entry.Time, entry.Message)
	for k, v := range entry.Fields {
		fmt.Fprintf(l.output, " %s=%v", k, v)
	}
	if entry.Error != "" {
		fmt.Fprintf(l.output, " error=%s", entry.Error)
	}
	fmt.Fprintln(l.output)
}

// Debug logs a debug message.
func Debug(msg string, fields map[string]any) {
	DefaultLogger.log(LogLevelDebug, msg, fields, nil)
}

// Info logs an info message.
func Info(msg string, fields map[string]any) {
	DefaultLogger.log(LogLevelInfo, msg, fields, nil)
}

// Warn logs a warning message.
func Warn(msg string, fields map[string]any) {
	DefaultLogger.log(LogLevelWarn, msg, fields, nil)
}

// Error logs an error message.
func Error(msg string, fields map[string]any, err error) {
	DefaultLogger.log(LogLevelError, msg, fields, err)
}
