// Package errors provides structured error reporting for the motion packages.
//
// Animation is a best-effort presentation concern: nothing here is fatal.
// Malformed values and unusable presets are reported as [AnimationError];
// panics recovered by FrameLoop.StepSafe arrive as [PanicError]. Both go to
// a process-wide [ErrorHandler] and the caller carries on.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindValue indicates a value that cannot be animated or interpolated.
	KindValue
	// KindConfig indicates an invalid spring configuration or preset.
	KindConfig
)

// String returns the lowercase kind name used in log fields.
func (k ErrorKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by [AnimationError].
var (
	// ErrUnsupportedValue is returned when a value has no animatable form.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrRangeMismatch is returned when the two ends of an interpolation
	// cannot be paired (different types, lengths or keys).
	ErrRangeMismatch = errors.New("interpolation range mismatch")
	// ErrInvalidPreset is returned for unusable spring presets.
	ErrInvalidPreset = errors.New("invalid spring preset")
)

// AnimationError represents a structured, non-fatal animation error.
type AnimationError struct {
	// Op is the operation that failed (e.g., "animation.Controller.Update").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Name is the animated property involved, if any.
	Name string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// Error formats the operation, kind, property name and cause.
func (e *AnimationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s [%s] name=%s: %v", e.Op, e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *AnimationError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.FrameLoop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

// Error formats the panic value with the operation that panicked.
func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ValueError describes a value that could not be classified or paired.
type ValueError struct {
	// From and To are the two ends involved. From is nil when only a single
	// value was inspected.
	From, To any
	// Err is ErrUnsupportedValue or ErrRangeMismatch.
	Err error
}

// Error names the sentinel and the Go types involved.
func (e *ValueError) Error() string {
	if e.From == nil {
		return fmt.Sprintf("%v: %T", e.Err, e.To)
	}
	return fmt.Sprintf("%v: %T -> %T", e.Err, e.From, e.To)
}

// Unwrap returns ErrUnsupportedValue or ErrRangeMismatch.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the motion packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *AnimationError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
