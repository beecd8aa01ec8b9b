// Package errs implements the three-kind error taxonomy described for the
// reader/match core: info, warning, and fatal. A warning lets a caller
// continue to the next input (e.g. one file fails to open); a fatal error
// unwinds the current operation after any registered destructors run.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies the severity of a Record.
type Kind uint8

const (
	// Info is a diagnostic that is never fatal.
	Info Kind = iota
	// Warning is non-fatal; the caller decides whether to continue.
	Warning
	// Fatal terminates the current operation once registered destructors
	// have run.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Record is a propagated error with a severity and an optional cause.
// Propagation is always explicit; Record is never thrown/panicked across
// package boundaries.
type Record struct {
	Kind    Kind
	Message string
	Cause   error
}

func (r *Record) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", r.Kind, r.Message, r.Cause)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As.
func (r *Record) Unwrap() error { return r.Cause }

// New creates a Record with a stack trace captured via cockroachdb/errors.
func New(kind Kind, message string) *Record {
	return &Record{Kind: kind, Message: message, Cause: errors.New(message)}
}

// Wrap attaches kind and message to an existing cause, preserving its
// stack trace and cause chain.
func Wrap(kind Kind, cause error, message string) *Record {
	return &Record{Kind: kind, Message: message, Cause: errors.Wrap(cause, message)}
}

// Warningf builds a Warning-kind Record.
func Warningf(format string, args ...any) *Record {
	return New(Warning, fmt.Sprintf(format, args...))
}

// Fatalf builds a Fatal-kind Record.
func Fatalf(format string, args ...any) *Record {
	return New(Fatal, fmt.Sprintf(format, args...))
}

// IsFatal reports whether err is (or wraps) a Fatal-kind Record.
func IsFatal(err error) bool {
	var r *Record
	return errors.As(err, &r) && r.Kind == Fatal
}

// IsWarning reports whether err is (or wraps) a Warning-kind Record.
func IsWarning(err error) bool {
	var r *Record
	return errors.As(err, &r) && r.Kind == Warning
}

// temporary is the capability interface cmd/searcher's isTemporary checks
// for; kept so the service layer can reuse errors.Cause(err).(temporary).
type temporary interface {
	Temporary() bool
}

// IsTemporary mirrors cmd/searcher/search.isTemporary: true if the error
// (or its root cause) says it is retryable.
func IsTemporary(err error) bool {
	e, ok := errors.Cause(err).(temporary)
	return ok && e.Temporary()
}
