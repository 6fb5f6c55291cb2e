package errors

import (
	"strconv"
	"strings"
)

// Severity is the native diagnostic severity. Codes outside the known
// range are preserved as-is.
type Severity int32

const (
	SeverityNote     Severity = 1
	SeverityWarning  Severity = 2
	SeverityError    Severity = 3
	SeveritySystem   Severity = 4
	SeverityInternal Severity = 5
	SeverityFailure  Severity = 6
)

var severityNames = [...]string{
	SeverityNote:     "Note",
	SeverityWarning:  "Warning",
	SeverityError:    "Error",
	SeveritySystem:   "System",
	SeverityInternal: "Internal",
	SeverityFailure:  "Failure",
}

// Known reports whether s is one of the six defined severities
func (s Severity) Known() bool {
	return s >= SeverityNote && s <= SeverityFailure
}

func (s Severity) String() string {
	if s.Known() {
		return severityNames[s]
	}
	return "Unknown(" + strconv.Itoa(int(s)) + ")"
}

// Diagnostic is one record read from the native out-of-band error channel.
// It is a snapshot; the native record itself is overwritten by the next call.
type Diagnostic struct {
	Severity Severity
	Message  string
	Context  string
	File     string
	Line     int32
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Context != "" {
		b.WriteString(" [")
		b.WriteString(d.Context)
		b.WriteByte(']')
	}
	if d.File != "" {
		b.WriteString(" at ")
		b.WriteString(d.File)
		if d.Line > 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(d.Line)))
		}
	}
	return b.String()
}

// Is reports whether target is a diagnostic of the same severity
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	return ok && t.Severity == d.Severity
}
