package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeSlotUnavailable     Code = "SLOT_UNAVAILABLE"
	CodeTimeSlotUnavailable Code = "TIME_SLOT_UNAVAILABLE"
	CodeInvalidTransition   Code = "INVALID_TRANSITION"
	CodeNotFound            Code = "NOT_FOUND"
	CodeDependencyFailure   Code = "DEPENDENCY_FAILURE"
	CodeInconsistency       Code = "INCONSISTENCY_WARNING"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Error is the only error type services hand back to callers. Message is safe
// to show to clients; the wrapped cause is for logs only.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether the caller may retry, possibly with different input.
func (e *Error) Retryable() bool {
	switch e.Code {
	case CodeSlotUnavailable, CodeTimeSlotUnavailable, CodeDependencyFailure:
		return true
	}
	return false
}

func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

func ValidationField(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

func NotFound(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

func SlotUnavailable(slotID string) *Error {
	return &Error{Code: CodeSlotUnavailable, Message: fmt.Sprintf("slot %s is no longer available", slotID)}
}

func TimeSlotUnavailable(date, start string) *Error {
	return &Error{Code: CodeTimeSlotUnavailable, Message: fmt.Sprintf("no available slot on %s at %s", date, start)}
}

func InvalidTransition(reason string) *Error {
	return &Error{Code: CodeInvalidTransition, Message: reason}
}

func DependencyFailure(dependency string, cause error) *Error {
	return &Error{Code: CodeDependencyFailure, Message: dependency + " is unavailable", cause: cause}
}

func Inconsistency(message string, cause error) *Error {
	return &Error{Code: CodeInconsistency, Message: message, cause: cause}
}

// Internal hides store and driver details behind a generic message.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", cause: cause}
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns CodeInternal for errors that did not come from this package.
func CodeOf(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
