package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies operation failures. Handlers map codes 1:1 to HTTP status
// codes; nothing below the operation boundary leaks raw driver errors.
type Code string

const (
	CodeUnauthorized        Code = "unauthorized"
	CodeForbidden           Code = "forbidden"
	CodeNotFound            Code = "not_found"
	CodeBadRequest          Code = "bad_request"
	CodeInvalidUploadStatus Code = "invalid_upload_status"
	CodeStorageUnavailable  Code = "storage_unavailable"
	CodeIngestFailed        Code = "ingest_failed"
)

// Error is the structured failure returned across the operation boundary.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the code to its HTTP status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeInvalidUploadStatus:
		return http.StatusConflict
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case CodeIngestFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the caller may retry with backoff.
func (e *Error) Retryable() bool {
	return e.Code == CodeStorageUnavailable
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NotFound deliberately does not distinguish "does not exist" from "outside
// the caller's tenant", to avoid leaking other tenants' data.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func BadRequest(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

func InvalidUploadStatus(msg string) *Error {
	return &Error{Code: CodeInvalidUploadStatus, Message: msg}
}

func StorageUnavailable(err error) *Error {
	return &Error{Code: CodeStorageUnavailable, Message: "storage unavailable", Err: err}
}

func IngestFailed(msg string, err error) *Error {
	return &Error{Code: CodeIngestFailed, Message: msg, Err: err}
}

// AsError extracts a *Error, wrapping unknown failures as ingest_failed so
// no raw error ever crosses the handler boundary.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Code: CodeIngestFailed, Message: "internal error", Err: err}
}
