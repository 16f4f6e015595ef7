// Package mdallog implements the pluggable logging sink of spec.md §7/§9:
// every error and warning a driver raises is also reported to an
// application-supplied Sink, independent of whether it aborts the load.
package mdallog

import (
	"fmt"
	"sync"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

// Sink receives one call per error or warning raised anywhere in the
// library. Implementations must be safe to call from any goroutine,
// though the library itself never calls concurrently into the same
// mesh or group (spec.md §5).
type Sink interface {
	Log(severity mdalerr.Severity, tag, message string)
}

var (
	mu   sync.Mutex
	sink Sink = nopSink{}
	set  bool
)

// SetSink installs the process-wide logger callback. spec.md §9: "allow
// the logger callback to be set at most once at init" — a second call
// is a no-op rather than a panic, since drivers may be initialized more
// than once in tests.
func SetSink(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	if set {
		return
	}
	sink = s
	set = true
}

// Log reports one event to the installed sink (or discards it if none
// was installed).
func Log(severity mdalerr.Severity, tag, message string) {
	mu.Lock()
	s := sink
	mu.Unlock()
	s.Log(severity, tag, message)
}

// Errorf reports an Error-severity event.
func Errorf(tag, format string, args ...any) {
	Log(mdalerr.SeverityError, tag, sprintf(format, args...))
}

// Warnf reports a Warn-severity event.
func Warnf(tag, format string, args ...any) {
	Log(mdalerr.SeverityWarn, tag, sprintf(format, args...))
}

// Infof reports an Info-severity event.
func Infof(tag, format string, args ...any) {
	Log(mdalerr.SeverityInfo, tag, sprintf(format, args...))
}

// Debugf reports a Debug-severity event.
func Debugf(tag, format string, args ...any) {
	Log(mdalerr.SeverityDebug, tag, sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

type nopSink struct{}

func (nopSink) Log(mdalerr.Severity, string, string) {}
