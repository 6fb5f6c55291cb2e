package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead     Phase = "read"     // native value read
	PhaseWrite    Phase = "write"    // native value write
	PhaseHandle   Phase = "handle"   // handle acquisition and navigation
	PhaseRegister Phase = "register" // callback registration
	PhaseDispatch Phase = "dispatch" // callback trampoline
	PhaseConvert  Phase = "convert"  // logic, time and text conversions
	PhaseControl  Phase = "control"  // simulation control and queries
	PhaseLoad     Phase = "load"     // design loading
	PhaseParse    Phase = "parse"    // text parsing
)

// Kind categorizes the error
type Kind string

const (
	KindNative       Kind = "native"
	KindUnsupported  Kind = "unsupported"
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalidData  Kind = "invalid_data"
	KindOverflow     Kind = "overflow"
	KindEncoding     Kind = "encoding"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
	KindRegistration Kind = "registration"
	KindNullHandle   Kind = "null_handle"
	KindContract     Kind = "contract"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Format string
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

	if e.GoType != "" || e.Format != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.Format != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", format ")
			b.WriteString(e.Format)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("format ")
			b.WriteString(e.Format)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Format != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Path sets the hierarchical object path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Format sets the native value format name
func (b *Builder) Format(f string) *Builder {
	b.err.Format = f
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Native wraps a diagnostic read from the native error channel.
// A nil diagnostic means the native call failed without leaving a record.
func Native(phase Phase, op string, diag *Diagnostic) *Error {
	e := &Error{
		Phase:  phase,
		Kind:   KindNative,
		Detail: op,
	}
	if diag != nil {
		e.Cause = diag
	} else {
		e.Detail = op + ": no diagnostic available"
	}
	return e
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, format string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Format: format,
	}
}

// UnsupportedFormat reports a value format the codec cannot handle in this direction
func UnsupportedFormat(phase Phase, format string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Format: format,
		Detail: "format not supported",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// Encoding creates a text encoding error
func Encoding(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEncoding,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
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

// NullHandle reports an operation attempted on the null handle
func NullHandle(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullHandle,
		Detail: op + " on null handle",
	}
}

// Registration creates a callback registration error
func Registration(reason string, cause error) *Error {
	e := &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: "register " + reason,
		Cause:  cause,
	}
	if cause == nil {
		e.Detail = "unrecognized callback reason " + reason
	}
	return e
}

// Contract reports a violation of the native calling contract
func Contract(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindContract,
		Detail: detail,
	}
}

// Load creates a design loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
