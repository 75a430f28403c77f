// Package svcerr carries the typed failures services return to callers.
// Every code reflects a caller or business-rule violation; none are retried.
package svcerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeNotEligible       Code = "NOT_ELIGIBLE"
	CodeAlreadyExists     Code = "ALREADY_EXISTS"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeConflict          Code = "CONFLICT"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeDuplicateReview   Code = "DUPLICATE_REVIEW"
	CodeHasActiveBookings Code = "HAS_ACTIVE_BOOKINGS"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotEligible(format string, args ...any) *Error {
	return New(CodeNotEligible, format, args...)
}

func AlreadyExists(format string, args ...any) *Error {
	return New(CodeAlreadyExists, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, format, args...)
}

func InvalidState(format string, args ...any) *Error {
	return New(CodeInvalidState, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(CodeConflict, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(CodeUnauthorized, format, args...)
}

func Validation(format string, args ...any) *Error {
	return New(CodeValidation, format, args...)
}

func DuplicateReview(format string, args ...any) *Error {
	return New(CodeDuplicateReview, format, args...)
}

func HasActiveBookings(format string, args ...any) *Error {
	return New(CodeHasActiveBookings, format, args...)
}

// CodeOf returns the service code carried by err, or "" for plain errors.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HTTPStatus maps a service error to its outward HTTP status. Each code keeps
// a stable, distinguishable signal so clients can decide how to react.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotEligible:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeDuplicateReview, CodeHasActiveBookings, CodeInvalidState, CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
