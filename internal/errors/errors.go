// Package errors provides the error kinds used while resolving and parsing reports
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Exit codes returned by the CLI
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitConfigError  = 2
)

// Kind classifies an error
type Kind int

const (
	KindRuntime Kind = iota
	// KindConfig is an unsupported option value, e.g. an unknown report type
	KindConfig
	// KindMissingInput means one or more resolved report files do not exist
	KindMissingInput
	// KindFormat is malformed input: bad duration strings, broken XML/JSON, non-numeric counters
	KindFormat
	// KindSoftFormat is a file extension a parser does not understand
	KindSoftFormat
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindMissingInput:
		return "missing input"
	case KindFormat:
		return "format"
	case KindSoftFormat:
		return "file type"
	default:
		return "runtime"
	}
}

// Error is the error type shared by the parsers and the dispatcher
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// ErrInvalidFileType matches any KindSoftFormat error with errors.Is
var ErrInvalidFileType = &Error{Kind: KindSoftFormat}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a message-less sentinel of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// Configf creates a configuration error
func Configf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// MissingInput lists every missing file in one message
func MissingInput(names []string) *Error {
	return &Error{
		Kind:    KindMissingInput,
		Message: fmt.Sprintf("output.xml file is missing: %s", strings.Join(names, ", ")),
	}
}

// Formatf creates a format error
func Formatf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindFormat, Message: fmt.Sprintf(format, args...)}
}

// WrapFormat wraps a decoding error as a format error
func WrapFormat(err error, message string) *Error {
	return &Error{Kind: KindFormat, Message: message, Cause: err}
}

// InvalidFileType creates a soft format error carrying the notice shown to the user
func InvalidFileType(message string) *Error {
	return &Error{Kind: KindSoftFormat, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, KindRuntime otherwise
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindRuntime
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch KindOf(err) {
	case KindConfig, KindMissingInput:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}
