package errors

import "errors"

// Error codes shared by the domain services and the HTTP transport.
const (
	CodeInvalidInput       = "invalid_input"
	CodeNetworkFailure     = "network_failure"
	CodeDecodeFailure      = "decode_failure"
	CodePersistenceFailure = "persistence_failure"
	CodeNotFound           = "not_found"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost AppError in the chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

var userMessages = map[string]string{
	CodeInvalidInput:       "Invalid city",
	CodeNetworkFailure:     "Network error",
	CodeDecodeFailure:      "Decode failed",
	CodePersistenceFailure: "Could not access saved data",
	CodeNotFound:           "Not found",
}

// UserMessage renders err as a short string suitable for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := userMessages[CodeOf(err)]; ok {
		return msg
	}
	return "Something went wrong"
}
