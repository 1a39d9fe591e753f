package errors

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// New creates a new error with file and line number information.
func New(format string, a ...interface{}) error {
	return fmt.Errorf("[%s] %s", location(), fmt.Sprintf(format, a...))
}

// Wrapf adds context (including file and line number) to an existing error.
// If the provided error is nil, Wrapf returns nil.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[%s] %s: %w", location(), fmt.Sprintf(format, a...), err)
}

// fatalError marks an error that must abort the whole run instead of being
// reported back to the model as a tool result.
type fatalError struct {
	err error
}

func (f *fatalError) Error() string { return f.err.Error() }
func (f *fatalError) Unwrap() error { return f.err }

// Fatalf wraps an error like Wrapf and marks it fatal. If the provided error
// is nil, Fatalf returns nil.
func Fatalf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: fmt.Errorf("[%s] %s: %w", location(), fmt.Sprintf(format, a...), err)}
}

// IsFatal reports whether any error in the chain was created by Fatalf.
func IsFatal(err error) bool {
	var f *fatalError
	return stderrors.As(err, &f)
}

// location reports the file:line of the caller two frames up, i.e. the code
// that called New/Wrapf/Fatalf.
func location() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
