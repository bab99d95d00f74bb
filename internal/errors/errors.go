package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/mosiko1234/heimdal/connectivity/internal/logger"
)

var (
	// ErrNoActiveInterface is returned by providers when no interface carries traffic
	ErrNoActiveInterface = stderrors.New("no active network interface")

	// ErrNotImplemented is returned for method names the reporter does not handle
	ErrNotImplemented = stderrors.New("method not implemented")
)

// Wrap wraps an error with additional context
func Wrap(err error, context string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	contextMsg := fmt.Sprintf(context, args...)
	return fmt.Errorf("%s: %w", contextMsg, err)
}

// WrapWithLog wraps an error with context and logs it
func WrapWithLog(err error, context string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, context, args...)
	logger.Error("%v", wrapped)
	return wrapped
}

// ComponentError represents an error from a specific component
type ComponentError struct {
	Component string
	Operation string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// NewComponentError creates a new component-specific error
func NewComponentError(component, operation string, err error) error {
	return &ComponentError{
		Component: component,
		Operation: operation,
		Err:       err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	if err == nil {
		return false
	}
	return stderrors.As(err, target)
}

// SafeClose safely closes a resource and logs any errors
func SafeClose(closer interface{ Close() error }, resourceName string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		logger.Warn("Failed to close %s: %v", resourceName, err)
	}
}
