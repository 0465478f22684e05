// Package log configures apex/log for awsmods. Log lines go to stderr so that
// stdout only ever carries the module result.
package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "AWSMODS_LOG"

// Fields is an alias so callers don't need to import apex/log.
type Fields = log.Fields

// Entry is a log entry with fields attached.
type Entry = log.Entry

// Init installs the stderr handler and sets the level. An empty level falls
// back to $AWSMODS_LOG and then to "warn".
func Init(level string) {
	InitWriter(os.Stderr, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	log.SetHandler(NewHandler(w))
	log.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to an apex level. Unknown names mean warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Handler writes "timestamp L message key=value ..." lines.
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", e.Timestamp.Format(time.DateTime), level, e.Message)

	names := e.Fields.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, b.String())
	return err
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields Fields) *Entry {
	return log.WithFields(fields)
}

// WithField returns an entry carrying one field.
func WithField(key string, value interface{}) *Entry {
	return log.WithField(key, value)
}

// WithError returns an entry carrying err.
func WithError(err error) *Entry {
	return log.WithError(err)
}
