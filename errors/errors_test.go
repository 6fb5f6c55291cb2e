package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindTypeMismatch,
				Path:   []string{"TOP", "U1", "DATA"},
				GoType: "vhpi.Str",
				Format: "LogicVecVal",
				Detail: "cannot convert",
			},
			contains: []string{"[write]", "type_mismatch", "TOP:U1:DATA", "vhpi.Str", "LogicVecVal", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRead,
				Kind:  KindUnsupported,
			},
			contains: []string{"[read]", "unsupported"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseControl,
				Kind:   KindNative,
				Detail: "vhpi_control",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[control]", "native", "vhpi_control", "caused by", "underlying error"},
		},
		{
			name: "format only",
			err: &Error{
				Phase:  PhaseRead,
				Kind:   KindUnsupported,
				Format: "PtrVal",
				Detail: "format not supported",
			},
			contains: []string{"format PtrVal - format not supported"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseRead,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseWrite,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseWrite, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRead, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseWrite, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseWrite, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseWrite, KindTypeMismatch).
		Path("TOP", "CLK").
		GoType("vhpi.Str").
		Format("LogicVal").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "logic", "string").
		Build()

	if err.Phase != PhaseWrite {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseWrite)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "TOP" || err.Path[1] != "CLK" {
		t.Errorf("Path = %v, want [TOP CLK]", err.Path)
	}
	if err.GoType != "vhpi.Str" {
		t.Errorf("GoType = %v, want 'vhpi.Str'", err.GoType)
	}
	if err.Format != "LogicVal" {
		t.Errorf("Format = %v, want 'LogicVal'", err.Format)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected logic, got string" {
		t.Errorf("Detail = %v, want 'expected logic, got string'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Native with diagnostic", func(t *testing.T) {
		diag := &Diagnostic{Severity: SeverityError, Message: "bad handle"}
		err := Native(PhaseRead, "vhpi_get_value", diag)
		if err.Kind != KindNative {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNative)
		}
		var got *Diagnostic
		if !errors.As(err, &got) || got != diag {
			t.Errorf("errors.As did not expose diagnostic")
		}
	})

	t.Run("Native without diagnostic", func(t *testing.T) {
		err := Native(PhaseWrite, "vhpi_put_value", nil)
		if err.Cause != nil {
			t.Errorf("Cause = %v, want nil", err.Cause)
		}
		if !strings.Contains(err.Detail, "no diagnostic") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseWrite, []string{"CLK"}, "vhpi.Real", "LogicVal")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "vhpi.Real" || err.Format != "LogicVal" {
			t.Errorf("GoType=%v Format=%v", err.GoType, err.Format)
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		err := UnsupportedFormat(PhaseRead, "RawDataVal")
		if err.Kind != KindUnsupported || err.Format != "RawDataVal" {
			t.Errorf("got %v", err)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseConvert, 300, "8-bit vector")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})

	t.Run("NullHandle", func(t *testing.T) {
		err := NullHandle(PhaseRead, "get value")
		if err.Kind != KindNullHandle {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNullHandle)
		}
	})

	t.Run("Registration with cause", func(t *testing.T) {
		cause := &Diagnostic{Severity: SeverityError, Message: "bad object"}
		err := Registration("ValueChange", cause)
		if !strings.Contains(err.Error(), "register ValueChange") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Registration without cause", func(t *testing.T) {
		err := Registration("9999", nil)
		if !strings.Contains(err.Error(), "unrecognized callback reason 9999") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLoad, "type", "std_logic")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, `"std_logic"`) {
			t.Errorf("got %v", err)
		}
	})
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev   Severity
		want  string
		known bool
	}{
		{SeverityNote, "Note", true},
		{SeverityWarning, "Warning", true},
		{SeverityError, "Error", true},
		{SeveritySystem, "System", true},
		{SeverityInternal, "Internal", true},
		{SeverityFailure, "Failure", true},
		{0, "Unknown(0)", false},
		{42, "Unknown(42)", false},
		{-1, "Unknown(-1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.sev.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.sev.Known(); got != tt.known {
				t.Errorf("Known() = %v, want %v", got, tt.known)
			}
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name string
		diag *Diagnostic
		want string
	}{
		{
			name: "message only",
			diag: &Diagnostic{Severity: SeverityWarning, Message: "object not found"},
			want: "Warning: object not found",
		},
		{
			name: "full record",
			diag: &Diagnostic{
				Severity: SeverityError,
				Message:  "illegal put",
				Context:  "vhpi_put_value",
				File:     "kernel.c",
				Line:     120,
			},
			want: "Error: illegal put [vhpi_put_value] at kernel.c:120",
		},
		{
			name: "file without line",
			diag: &Diagnostic{Severity: 9, Message: "x", File: "a.vhd"},
			want: "Unknown(9): x at a.vhd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
