package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryMarkup     Category = "markup"
	CategoryReconcile  Category = "reconcile"
	CategoryProtocol   Category = "protocol"
	CategoryValidation Category = "validation"
	CategorySnapshot   Category = "snapshot"
)

// FaxError is a structured error with a stable code, a suggestion, and
// a documentation pointer.
type FaxError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (runtime, reconcile, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FaxError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FaxError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FaxError) WithSuggestion(s string) *FaxError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *FaxError) WithDetail(format string, args ...any) *FaxError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *FaxError) Wrap(err error) *FaxError {
	e.Wrapped = err
	return e
}

// New creates a FaxError from a registered error code.
func New(code string) *FaxError {
	template, ok := registry[code]
	if !ok {
		return &FaxError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FaxError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new FaxError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FaxError {
	return &FaxError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FaxError.
func FromError(err error, code string) *FaxError {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FaxError); ok {
		return fe
	}
	return New(code).Wrap(err)
}

// IsCode reports whether err is (or wraps) a FaxError with the given code.
func IsCode(err error, code string) bool {
	for err != nil {
		if fe, ok := err.(*FaxError); ok && fe.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
