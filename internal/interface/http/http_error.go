package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// HTTPError is an error with the status and body fields it renders as.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromAppError maps domain error codes onto HTTP statuses. Input and lookup
// errors keep their specific message; the rest use the display message.
func fromAppError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	switch code {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, code, appMessage(err), err)
	case apperrors.CodeNotFound:
		return NewHTTPError(http.StatusNotFound, code, appMessage(err), err)
	case apperrors.CodeNetworkFailure, apperrors.CodeDecodeFailure:
		return NewHTTPError(http.StatusBadGateway, code, apperrors.UserMessage(err), err)
	case apperrors.CodePersistenceFailure:
		return NewHTTPError(http.StatusInternalServerError, code, apperrors.UserMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", apperrors.UserMessage(err), err)
	}
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return apperrors.UserMessage(err)
}

// asHTTPError accepts anything pushed onto gin's error list. Bare domain
// errors are mapped by code.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromAppError(err)
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
