package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownKind, "unknown barline kind: %s", "triple")

	if err.Code != ErrCodeUnknownKind {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownKind)
	}

	if err.Message != "unknown barline kind: triple" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown barline kind: triple")
	}

	expected := "UNKNOWN_KIND: unknown barline kind: triple"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("toml: line 3: expected '='")
	err := Wrap(ErrCodeInvalidScore, cause, "failed to decode score")

	if err.Code != ErrCodeInvalidScore {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidScore)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      ContextMissing("barline"),
			code:     ErrCodeRenderingContextMissing,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      NoAttachedNote("annotation"),
			code:     ErrCodeRenderingContextMissing,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, UnknownKind("barline kind", 9), "layout failed"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      NoAttachedNote("annotation"),
			expected: ErrCodeNoAttachedNote,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      UnknownKind("vertical justification", "middle"),
			expected: "unknown vertical justification: middle",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown kind", UnknownKind("barline kind", "x"), 400},
		{"invalid score", New(ErrCodeInvalidScore, "bad"), 400},
		{"file not found", New(ErrCodeFileNotFound, "gone"), 404},
		{"unsupported", New(ErrCodeUnsupported, "nope"), 501},
		{"context missing", ContextMissing("stave"), 500},
		{"plain", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
