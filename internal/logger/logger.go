// Package logger is a small leveled wrapper around the standard log package.
package logger

import (
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

var (
	minPriority atomic.Int32
	noColor     atomic.Bool
)

func init() {
	minPriority.Store(int32(levelPriority(LevelInfo)))
}

// levelPriority returns the numeric priority for a log level.
// Higher number = more severe.
func levelPriority(level Level) int {
	switch level {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default:
		return 1
	}
}

// ParseLevel maps LOG_LEVEL values to a Level, defaulting to INFO.
func ParseLevel(val string) Level {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel drops messages below level.
func SetLevel(level Level) {
	minPriority.Store(int32(levelPriority(level)))
}

// SetOutput redirects log output; colors are disabled unless color is true.
func SetOutput(w io.Writer, color bool) {
	log.SetOutput(w)
	noColor.Store(!color)
}

func colorForLevel(level Level) string {
	switch level {
	case LevelDebug:
		return colorBlue
	case LevelInfo:
		return colorGreen
	case LevelWarn:
		return colorYellow
	case LevelError:
		return colorRed
	default:
		return colorReset
	}
}

func logf(level Level, format string, args ...any) {
	if int32(levelPriority(level)) < minPriority.Load() {
		return
	}

	prefix := "[" + string(level) + "] "
	if !noColor.Load() {
		prefix = colorForLevel(level) + prefix + colorReset
	}
	log.Printf(prefix+format, args...)
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }
