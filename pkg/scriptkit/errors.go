package scriptkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for template resolution.
var (
	// ErrMalformedExpression indicates the expression open and close tokens
	// do not occur the same number of times.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrInvalidBinding indicates a binding key or value contains a reserved
	// token.
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrValidation indicates the template validator rejected a value.
	ErrValidation = errors.New("binding value rejected")

	// ErrInvalidTemplate indicates a template with empty or clashing tokens.
	ErrInvalidTemplate = errors.New("invalid template")
)

// MalformedExpressionError reports unbalanced expression tokens.
type MalformedExpressionError struct {
	// Open and Close are the expression tokens of the active template.
	Open  string
	Close string
	// OpenCount and CloseCount are their occurrence counts in the text.
	OpenCount  int
	CloseCount int
}

// Error implements the error interface.
func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("the count of %s (%d) doesn't match the count of %s (%d)",
		e.Open, e.OpenCount, e.Close, e.CloseCount)
}

// Unwrap returns ErrMalformedExpression for errors.Is support.
func (e *MalformedExpressionError) Unwrap() error {
	return ErrMalformedExpression
}

// InvalidBindingError reports a binding that cannot be substituted safely.
type InvalidBindingError struct {
	// Key is the binding key.
	Key string
	// Field is "key" or "value".
	Field string
	// Token is the reserved token found. Empty when the value is nil.
	Token string
}

// Error implements the error interface.
func (e *InvalidBindingError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("binding %q: %s cannot be nil", e.Key, e.Field)
	}
	return fmt.Sprintf("binding %q: %s cannot contain %q", e.Key, e.Field, e.Token)
}

// Unwrap returns ErrInvalidBinding for errors.Is support.
func (e *InvalidBindingError) Unwrap() error {
	return ErrInvalidBinding
}

// ValidationError reports a value refused by a template validator.
type ValidationError struct {
	// Key is the binding key. Validators leave it empty, the replacer fills
	// it in.
	Key string
	// Value is the rejected value.
	Value string
	// Reason describes the rule that failed.
	Reason string
	// Err is the validator's own error when it did not return a
	// *ValidationError.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Key == "" {
		return fmt.Sprintf("value %q rejected: %s", e.Value, reason)
	}
	return fmt.Sprintf("binding %q: value %q rejected: %s", e.Key, e.Value, reason)
}

// Unwrap returns ErrValidation and the validator's error, if any.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// RenderError wraps a failure to render a catalog script.
type RenderError struct {
	// Script is the catalog name of the script.
	Script string
	// RenderID identifies the render in logs and traces.
	RenderID string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Err
}
