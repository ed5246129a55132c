package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which build step produced the error
type Phase string

const (
	PhaseSession  Phase = "session"  // start/append/end protocol
	PhaseParse    Phase = "parse"    // signature parsing
	PhaseDiscover Phase = "discover" // front end scanning
	PhaseBuild    Phase = "build"    // descriptor assembly
	PhaseEmit     Phase = "emit"     // writing the descriptor
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNoActiveSession      Kind = "no_active_session"
	KindSessionAlreadyActive Kind = "session_already_active"
	KindInvalidSignature     Kind = "invalid_signature"
	KindInvalidDirective     Kind = "invalid_directive"
	KindWriteFailed          Kind = "write_failed"
	KindInvalidInput         Kind = "invalid_input"
	KindNotFound             Kind = "not_found"
	KindUnsupported          Kind = "unsupported"
)

// Sentinels for errors.Is checks that only care about the session protocol.
var (
	ErrNoActiveSession      = &Error{Phase: PhaseSession, Kind: KindNoActiveSession}
	ErrSessionAlreadyActive = &Error{Phase: PhaseSession, Kind: KindSessionAlreadyActive}
)

// Error is the structured error type used throughout gmsbind
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Name   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, ":"))
	}

	if e.Name != "" {
		b.WriteString(" (")
		b.WriteString(e.Name)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the source path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Name sets the session or function name
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoActiveSession reports an append or end outside a start/end bracket
func NoActiveSession(op string) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindNoActiveSession,
		Detail: fmt.Sprintf("%s called with no active session; missing start", op),
	}
}

// SessionAlreadyActive reports a start while another session is unfinished
func SessionAlreadyActive(active, requested string) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindSessionAlreadyActive,
		Name:   requested,
		Detail: fmt.Sprintf("session %q has not ended", active),
	}
}

// InvalidSignature rejects a function whose signature cannot be described
func InvalidSignature(path []string, name, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidSignature,
		Path:   path,
		Name:   name,
		Detail: detail,
	}
}

// InvalidDirective reports a malformed or misplaced bind directive
func InvalidDirective(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseDiscover,
		Kind:   KindInvalidDirective,
		Path:   path,
		Detail: detail,
	}
}

// WriteFailed reports a sink that could not store the descriptor
func WriteFailed(location string, cause error) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindWriteFailed,
		Path:   []string{location},
		Detail: "cannot write descriptor",
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Name:   name,
		Detail: what + " not found",
	}
}

// Unsupported creates an unsupported construct error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
