package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeSourcesExhausted, "all sources failed")

	if !Is(err, ErrCodeSourcesExhausted) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeDeadlineExceeded) {
		t.Error("Is() should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeSourcesExhausted) {
		t.Error("Is() should not match plain errors")
	}
}

func TestIsWrapped(t *testing.T) {
	inner := New(ErrCodePackageNotFound, "no such package")
	outer := Wrap(ErrCodeInternal, inner, "resolve failed")

	// The outermost code wins when unwrapping the chain.
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is() should match the outermost code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != Code("") {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidQuery, "query cannot be empty")); got != "query cannot be empty" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidPackage, 400},
		{ErrCodeInvalidQuery, 400},
		{ErrCodeSourcesExhausted, 404},
		{ErrCodePackageNotFound, 404},
		{ErrCodeRateLimited, 429},
		{ErrCodeDeadlineExceeded, 504},
		{ErrCodeUnsupported, 422},
		{ErrCodeInternal, 500},
		{Code("UNKNOWN_CODE"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
