// Package logger provides the leveled, categorized diagnostic logger used
// internally by the reactive engine. It has no relation to, and is not
// configured by, anything the embedding application logs. It exists so the
// engine's own maintainers can trace refresh/notify/drain bookkeeping when a
// graph misbehaves.
package logger

import "fmt"

// Level selects how verbose a Logger is.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Logger is a small leveled, categorized logger. Unlike a package-level
// global, a Logger is a value owned by a single Runtime, so two Runtimes in
// the same process can be configured (or silenced) independently.
type Logger struct {
	level      Level
	categories map[string]bool
}

// New creates a Logger at the given level with no category filter (every
// category logs once the level threshold is met).
func New(level Level) *Logger {
	return &Logger{level: level}
}

// Silent returns a Logger that never writes anything. It is the default for
// a Runtime that didn't ask for one.
func Silent() *Logger {
	return New(LevelSilent)
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// EnableCategory restricts output to an allow-list of categories. Once any
// category is enabled, only enabled categories log; the level threshold
// still applies to them.
func (l *Logger) EnableCategory(category string) {
	if l.categories == nil {
		l.categories = make(map[string]bool)
	}
	l.categories[category] = true
}

func (l *Logger) DisableCategory(category string) {
	delete(l.categories, category)
}

func (l *Logger) shouldLog(level Level, category string) bool {
	if l == nil || l.level == LevelSilent {
		return false
	}
	if level > l.level {
		return false
	}
	if len(l.categories) > 0 && category != "" {
		return l.categories[category]
	}
	return true
}

func (l *Logger) Error(category, format string, args ...interface{}) {
	if l.shouldLog(LevelError, category) {
		fmt.Printf("[ERROR][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Warn(category, format string, args ...interface{}) {
	if l.shouldLog(LevelWarn, category) {
		fmt.Printf("[WARN][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Info(category, format string, args ...interface{}) {
	if l.shouldLog(LevelInfo, category) {
		fmt.Printf("[INFO][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Debug(category, format string, args ...interface{}) {
	if l.shouldLog(LevelDebug, category) {
		fmt.Printf("[DEBUG][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Trace(category, format string, args ...interface{}) {
	if l.shouldLog(LevelTrace, category) {
		fmt.Printf("[TRACE][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}
