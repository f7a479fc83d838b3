// Package logger provides leveled console logging for indexgen runs.
//
// Output lines are prefixed with [HH:MM:SS] timestamps and a level tag.
// The logger is safe for concurrent use from parallel subtree walkers.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger is the logging surface the traversal and source components depend on.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// ConsoleLogger logs run progress to a writer with timestamps and thread
// safety. Level tags are colorized when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded. logLevel
// determines the minimum level for messages to be output; valid levels are
// debug, info, warn and error (case-insensitive). An empty or invalid level
// defaults to "error", matching the tool's quiet-by-default behavior.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// LevelFromVerbosity maps a counted --verbose flag to a log level:
// 0 = error, 1 = warn, 2 = info, 3 and above = debug.
func LevelFromVerbosity(count int) string {
	switch {
	case count <= 0:
		return "error"
	case count == 1:
		return "warn"
	case count == 2:
		return "info"
	default:
		return "debug"
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	// color.NoColor honors the NO_COLOR convention.
	return !color.NoColor && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// normalizeLogLevel lowercases and validates a level string, defaulting to
// "error" for anything unknown.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized
	}
	return "error"
}

func logLevelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	default:
		return levelError
	}
}

// shouldLog reports whether a message at messageLevel passes the filter.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message. Errors always pass the filter.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(tag, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(tag)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp, cl.colorize(tag), message)
}

// colorize wraps the level tag in a color when writing to a terminal.
func (cl *ConsoleLogger) colorize(tag string) string {
	if !cl.colorOutput {
		return tag
	}
	switch tag {
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(tag)
	case "WARN":
		return color.New(color.FgYellow).Sprint(tag)
	case "ERROR":
		return color.New(color.FgRed).Sprint(tag)
	default:
		return tag
	}
}
