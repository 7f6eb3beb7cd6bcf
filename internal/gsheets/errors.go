package gsheets

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind is the coarse category an API failure is translated into.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermissionDenied
	KindInvalidRequest
)

// APIError wraps a failed remote call with its coarse category. The original
// service message is preserved in the cause chain.
type APIError struct {
	Kind      Kind
	Operation string
	Message   string
	Cause     error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// classify translates a googleapi error into an APIError with one of the
// three recognised categories, or KindUnknown with the original message.
func classify(operation string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return &APIError{Kind: KindNotFound, Operation: operation, Message: "not found", Cause: err}
		case http.StatusForbidden:
			return &APIError{Kind: KindPermissionDenied, Operation: operation, Message: "permission denied", Cause: err}
		case http.StatusBadRequest:
			return &APIError{Kind: KindInvalidRequest, Operation: operation, Message: "invalid request", Cause: err}
		}
	}
	return &APIError{Kind: KindUnknown, Operation: operation, Message: "request failed", Cause: err}
}

// notFoundf builds a locally-detected not-found error, e.g. a sheet title
// that matched nothing in the spreadsheet metadata.
func notFoundf(operation, format string, args ...any) error {
	return &APIError{Kind: KindNotFound, Operation: operation, Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a not-found API error.
func IsNotFound(err error) bool {
	var aerr *APIError
	return errors.As(err, &aerr) && aerr.Kind == KindNotFound
}

// IsPermissionDenied reports whether err is a permission-denied API error.
func IsPermissionDenied(err error) bool {
	var aerr *APIError
	return errors.As(err, &aerr) && aerr.Kind == KindPermissionDenied
}

// IsInvalidRequest reports whether err is a malformed-request API error.
func IsInvalidRequest(err error) bool {
	var aerr *APIError
	return errors.As(err, &aerr) && aerr.Kind == KindInvalidRequest
}
