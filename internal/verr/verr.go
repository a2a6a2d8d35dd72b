// Package verr defines the library error taxonomy and the process-wide
// error sink. Errors are returned as ordinary Go errors and, in parallel,
// pushed to the installed sink so callers that only registered a callback
// still observe failures from the event loop.
package verr

import (
	"fmt"
	"sync"
)

// Kind classifies an error without prescribing a concrete Go type per case.
type Kind int

const (
	InvalidValue Kind = iota + 1
	OutOfMemory
	APIUnavailable
	VersionUnavailable
	FormatUnavailable
	PlatformError
	CursorUnavailable
	NoWindowContext
	PlatformUnavailable
)

func (k Kind) String() string {
	switch k {
	case InvalidValue:
		return "invalid value"
	case OutOfMemory:
		return "out of memory"
	case APIUnavailable:
		return "API unavailable"
	case VersionUnavailable:
		return "version unavailable"
	case FormatUnavailable:
		return "format unavailable"
	case PlatformError:
		return "platform error"
	case CursorUnavailable:
		return "cursor unavailable"
	case NoWindowContext:
		return "no window context"
	case PlatformUnavailable:
		return "platform unavailable"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error carries a kind and a formatted message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Sink receives every reported error. It must not reenter the library.
type Sink func(*Error)

var (
	mu   sync.Mutex
	sink Sink
)

// InstallSink replaces the error sink. A nil sink disables reporting.
func InstallSink(s Sink) {
	mu.Lock()
	sink = s
	mu.Unlock()
}

// New builds an *Error without reporting it.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an *Error, pushes it to the sink and returns it.
func Errorf(kind Kind, format string, args ...any) *Error {
	e := New(kind, format, args...)
	Report(e)
	return e
}

// Report pushes an already-built error to the sink.
func Report(e *Error) {
	mu.Lock()
	s := sink
	mu.Unlock()
	if s != nil {
		s(e)
	}
}
