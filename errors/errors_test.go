package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewIncludesLocation(t *testing.T) {
	err := New("something %s", "broke")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "errors_test.go:") {
		t.Errorf("expected caller location in %q", err.Error())
	}
	if !strings.Contains(err.Error(), "something broke") {
		t.Errorf("expected formatted message in %q", err.Error())
	}
}

func TestWrapfNilReturnsNil(t *testing.T) {
	if err := Wrapf(nil, "context"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Fatalf(nil, "context"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestWrapfPreservesCause(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrapf(cause, "while doing work")
	if !stderrors.Is(err, cause) {
		t.Errorf("wrapped error should match its cause")
	}
	if IsFatal(err) {
		t.Errorf("Wrapf must not mark errors fatal")
	}
}

func TestFatalf(t *testing.T) {
	cause := stderrors.New("spawn failed")
	err := Fatalf(cause, "could not start command")
	if !IsFatal(err) {
		t.Fatalf("expected IsFatal to be true")
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("fatal error should match its cause")
	}
	if !strings.Contains(err.Error(), "could not start command") {
		t.Errorf("expected context in %q", err.Error())
	}

	// Fatality survives further wrapping.
	wrapped := Wrapf(err, "tool failed")
	if !IsFatal(wrapped) {
		t.Errorf("expected fatality to survive Wrapf")
	}
}
