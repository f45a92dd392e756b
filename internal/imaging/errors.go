package imaging

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes analysis failures.
type ErrorKind string

const (
	// KindDecode covers unreadable, corrupt, empty or over-limit image bytes.
	KindDecode ErrorKind = "decode"

	// KindUnsupportedFormat covers images that decode but whose format or
	// channel layout cannot be normalized to RGB.
	KindUnsupportedFormat ErrorKind = "unsupported_format"

	// KindInternal covers failures inside a metric computation. Gradient and
	// edge analysis recover from these locally by reporting 0.
	KindInternal ErrorKind = "internal"
)

// AnalysisError is the structured error returned by the analysis pipeline.
type AnalysisError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a KindDecode error.
func NewDecodeError(message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: KindDecode, Message: message, Cause: cause}
}

// NewUnsupportedFormatError creates a KindUnsupportedFormat error.
func NewUnsupportedFormatError(message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: KindUnsupportedFormat, Message: message, Cause: cause}
}

// NewInternalError creates a KindInternal error.
func NewInternalError(message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: KindInternal, Message: message, Cause: cause}
}

// IsKind reports whether err (or anything it wraps) is an AnalysisError of
// the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}
