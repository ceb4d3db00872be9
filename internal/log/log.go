// Package log provides category-based structured logging for onboard.
// Logging is off unless a log file is initialised (the --debug flag or
// ONBOARD_DEBUG). Entries are also published on a broker so the TUI can show
// them in its debug footer.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/proconsult/onboard/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatAPI      Category = "api"      // Gateway client and domain service calls
	CatToken    Category = "token"    // Bearer token acquisition
	CatFlow     Category = "flow"     // Registration flow controller transitions
	CatRecovery Category = "recovery" // Forgot/new password flow
	CatConfig   Category = "config"   // Configuration loading/saving
	CatCache    Category = "cache"    // Reference data caches
	CatUI       Category = "ui"       // Screen and component updates
	CatTrace    Category = "trace"    // Tracing provider lifecycle
)

// Logger writes formatted entries to a writer and a broker.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	stdMu         sync.RWMutex
	defaultLogger *Logger
)

// Init opens path through tea.LogToFile and installs it as the global logger.
// The returned function closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "onboard")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(New(f, LevelDebug))
	return func() {
		install(nil)
		_ = f.Close()
	}, nil
}

// New creates a logger writing to w. It is not installed globally; use
// SetDefault for that. If w is an io.Closer it is remembered for Close.
func New(w io.Writer, minLevel Level) *Logger {
	l := &Logger{
		writer:   w,
		enabled:  true,
		minLevel: minLevel,
		broker:   pubsub.NewBroker[string](),
	}
	if c, ok := w.(io.Closer); ok && w != os.Stderr && w != os.Stdout {
		l.closer = c
	}
	return l
}

// SetDefault installs l as the global logger and returns a restore function.
// Intended for tests.
func SetDefault(l *Logger) func() {
	stdMu.Lock()
	prev := defaultLogger
	defaultLogger = l
	stdMu.Unlock()
	return func() { install(prev) }
}

func install(l *Logger) {
	stdMu.Lock()
	defaultLogger = l
	stdMu.Unlock()
}

func current() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return defaultLogger
}

// Enabled reports whether a global logger is installed and active.
func Enabled() bool {
	l := current()
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum level written.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}
	l.log(level, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	entry := Format(time.Now(), level, cat, msg, fields...)

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}
	if l.broker != nil {
		l.broker.Publish(pubsub.LoggedEvent, entry)
	}
}

// Format renders one entry:
//
//	2026-01-02T15:04:05 [ERROR] [api] message key=value key2=value2
//
// An odd trailing field is written as key=<missing>.
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

// Close closes the underlying writer when it is closable.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.broker != nil {
		l.broker.Close()
	}
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// LogEvent is a published log entry.
type LogEvent = pubsub.Event[string]

// LogListener listens for log entries inside a Bubble Tea program.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to the global logger's entries until ctx ends.
// Returns nil when logging is not initialised.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil || l.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, l.broker)
}
