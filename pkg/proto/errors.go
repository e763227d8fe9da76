package proto

import (
	"errors"
	"net/http"
)

// Code classifies domain failures.
type Code string

const (
	// CodeInternal is any failure not covered by another code.
	CodeInternal Code = "internal"
	// CodeUnauthenticated means the request carries no valid session.
	CodeUnauthenticated Code = "unauthenticated"
	// CodeForbidden means the caller lacks the membership or role required.
	CodeForbidden Code = "forbidden"
	// CodeNotFound means the entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeValidationFailed means the request failed boundary validation.
	CodeValidationFailed Code = "validation_failed"
	// CodeInvalidState means the request conflicts with current state.
	CodeInvalidState Code = "invalid_state"
	// CodeUploadFailed means the blob store rejected an upload.
	CodeUploadFailed Code = "upload_failed"
)

// HTTPStatus maps the code to its HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed, CodeInvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a coded domain error.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Client-facing message
	Details string // Extra detail echoed to clients, upload failures only
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a domain error with a code and message.
func NewError(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a domain error that wraps an underlying cause.
func WrapError(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Invalid returns a validation error with the given message.
func Invalid(message string) *Error {
	return NewError(CodeValidationFailed, message)
}

// UploadFailed returns an upload error that echoes cause to the client.
func UploadFailed(cause error) *Error {
	e := WrapError(CodeUploadFailed, "Upload failed", cause)
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

var (
	// ErrUnauthenticated is returned when no valid session is present.
	ErrUnauthenticated = NewError(CodeUnauthenticated, "Unauthorized")
	// ErrForbidden is returned when the caller is not allowed to act.
	ErrForbidden = NewError(CodeForbidden, "Forbidden")
	// ErrNotFound matches every not-found error.
	ErrNotFound = NewError(CodeNotFound, "Not found")
	// ErrValidation matches every validation error.
	ErrValidation = NewError(CodeValidationFailed, "Invalid request")
	// ErrInvalidState matches every state conflict.
	ErrInvalidState = NewError(CodeInvalidState, "Invalid state")
	// ErrUploadFailed matches every upload failure.
	ErrUploadFailed = NewError(CodeUploadFailed, "Upload failed")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = NewError(CodeNotFound, "User not found")
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = NewError(CodeNotFound, "Team not found")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = NewError(CodeNotFound, "Task not found")
	// ErrSubtaskNotFound is returned when a subtask is not found.
	ErrSubtaskNotFound = NewError(CodeNotFound, "Subtask not found")
	// ErrBlobNotFound is returned when a stored object is not found.
	ErrBlobNotFound = NewError(CodeNotFound, "Not found")
	// ErrNotTeamMember is returned when the caller has no membership.
	ErrNotTeamMember = NewError(CodeForbidden, "Not a team member")
	// ErrInsufficientRole is returned when the caller's role is too low.
	ErrInsufficientRole = NewError(CodeForbidden, "Only admins can invite")
	// ErrAlreadyInTeam is returned when inviting an existing member.
	ErrAlreadyInTeam = NewError(CodeInvalidState, "User is already in the team")
	// ErrUserExists is returned when provisioning a duplicate email.
	ErrUserExists = NewError(CodeInvalidState, "User already exists")
)
