package errors

import (
	"errors"
	"fmt"
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
				Phase:  PhaseDecode,
				Kind:   KindTypeMismatch,
				Path:   []string{"args", "0", "zip"},
				Want:   "nat32",
				Got:    "text",
				Detail: "cannot convert",
			},
			contains: []string{"[decode]", "type_mismatch", "args.0.zip", "want nat32", "got text", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindSyntax,
			},
			contains: []string{"[parse]", "syntax_error"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindMalformed,
				Detail: "truncated",
				Cause:  errors.New("unexpected EOF"),
			},
			contains: []string{"[decode]", "malformed_wire_data", "truncated", "caused by", "unexpected EOF"},
		},
		{
			name:     "want only",
			err:      &Error{Phase: PhaseAccess, Kind: KindTypeMismatch, Want: "bool"},
			contains: []string{"want bool"},
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
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
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
		Phase: PhaseAccess,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseAccess, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseAccess, Kind: KindSyntax}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseAccess, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestKindOf(t *testing.T) {
	base := Overflow(PhaseNumeric, nil, "256", "nat8")
	wrapped := fmt.Errorf("parse argument: %w", base)

	if got := KindOf(wrapped); got != KindOverflow {
		t.Errorf("KindOf = %q, want %q", got, KindOverflow)
	}
	if !IsKind(wrapped, KindOverflow) {
		t.Error("IsKind should see through fmt wrapping")
	}
	if IsKind(nil, KindOverflow) {
		t.Error("IsKind(nil) should be false")
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindMalformed).
		Path("args", "1").
		Want("principal").
		Got("text").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "principal", "text").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindMalformed {
		t.Errorf("Kind = %v, want %v", err.Kind, KindMalformed)
	}
	if len(err.Path) != 2 || err.Path[1] != "1" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Want != "principal" || err.Got != "text" {
		t.Errorf("Want/Got = %q/%q", err.Want, err.Got)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if err.Detail != "expected principal, got text" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"syntax", Syntax(2, 5, "unexpected token"), PhaseParse, KindSyntax},
		{"type_mismatch", TypeMismatch(PhaseAccess, nil, "bool", "text"), PhaseAccess, KindTypeMismatch},
		{"invalid_argument", InvalidArgument(PhaseConstruct, "negative nat"), PhaseConstruct, KindInvalidArgument},
		{"overflow", Overflow(PhaseNumeric, nil, "300", "nat8"), PhaseNumeric, KindOverflow},
		{"sign", Sign(PhaseNumeric, nil, "-1", "nat8"), PhaseNumeric, KindSign},
		{"malformed", Malformed(nil, "bad magic"), PhaseDecode, KindMalformed},
		{"unsupported", Unsupported(PhaseEncode, "empty"), PhaseEncode, KindUnsupported},
		{"not_found", NotFound(PhaseMetadata, "section", "candid:service"), PhaseMetadata, KindNotFound},
		{"wrap", Wrap(PhaseDecode, KindMalformed, errors.New("eof"), "read"), PhaseDecode, KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestSyntaxPosition(t *testing.T) {
	err := Syntax(3, 7, "expected '}'")
	if !strings.Contains(err.Error(), "line 3, column 7: expected '}'") {
		t.Errorf("unexpected message %q", err.Error())
	}

	noPos := Syntax(0, 0, "unexpected end of input")
	if noPos.Detail != "unexpected end of input" {
		t.Errorf("Detail = %q", noPos.Detail)
	}
}

func TestWithPath(t *testing.T) {
	err := WithPath(Overflow(PhaseNumeric, nil, "300", "nat8"), []string{"a", "0"})
	if !strings.Contains(err.Error(), "at a.0") {
		t.Errorf("path missing from %q", err.Error())
	}

	kept := WithPath(TypeMismatch(PhaseAnnotate, []string{"x"}, "nat", "text"), []string{"y"})
	if !strings.Contains(kept.Error(), "at x") {
		t.Errorf("existing path overwritten: %q", kept.Error())
	}

	plain := errors.New("plain")
	if WithPath(plain, []string{"z"}) != plain {
		t.Error("plain errors must pass through")
	}
}
