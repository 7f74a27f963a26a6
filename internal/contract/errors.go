package contract

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/azizikri/edulearn/internal/domain"
	"github.com/golang/glog"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeUnknownOperation   = "UNKNOWN_OPERATION"
	CodeMethodNotSupported = "METHOD_NOT_SUPPORTED"
	CodeInvalidRequest     = "INVALID_REQUEST"
)

const internalMessage = "internal server error"

// Error is the structured error carried on the wire and returned to clients.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets callers match wire errors against the domain sentinels.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeNotFound:
		return domain.ErrNotFound
	case CodeValidation, CodeInvalidRequest:
		return domain.ErrValidation
	case CodeInternal:
		return domain.ErrInternal
	}
	return nil
}

func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound, CodeUnknownOperation:
		return http.StatusNotFound
	case CodeValidation, CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeMethodNotSupported:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// FromError converts an operation failure into its wire form. Unexpected
// errors are logged and reported without their details.
func FromError(err error) *Error {
	var wireErr *Error
	if errors.As(err, &wireErr) {
		return wireErr
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NewError(CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return NewError(CodeValidation, err.Error())
	}

	glog.Errorf("operation failed: %v", err)
	return NewError(CodeInternal, internalMessage)
}
