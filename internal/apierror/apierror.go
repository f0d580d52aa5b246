package apierror

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorCode string

const (
	ErrSessionExpired        ErrorCode = "SESSION_EXPIRED"
	ErrInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	ErrLoginFailed           ErrorCode = "LOGIN_FAILED"
	ErrRegistrationFailed    ErrorCode = "REGISTRATION_FAILED"
	ErrInvalidAmount         ErrorCode = "INVALID_AMOUNT"
	ErrInvalidTransfer       ErrorCode = "INVALID_TRANSFER"
	ErrDepositFailed         ErrorCode = "DEPOSIT_FAILED"
	ErrTransferFailed        ErrorCode = "TRANSFER_FAILED"
	ErrAccountCreationFailed ErrorCode = "ACCOUNT_CREATION_FAILED"
	ErrDecode                ErrorCode = "DECODE_ERROR"
)

// APIError is the typed failure surfaced by session operations. Details holds
// server-provided validation output when the backend sent any.
type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RemoteError is a non-2xx response from the backend, carrying the HTTP
// status and the server's message field when one was present. Timeouts and
// transport failures map here too, with status 0.
type RemoteError struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
}

func (e RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote call failed: %s", e.Message)
	}
	return fmt.Sprintf("remote call failed (%d): %s", e.Status, e.Message)
}

// HasCode reports whether err is an APIError carrying the given code,
// unwrapping any context added along the way.
func HasCode(err error, code ErrorCode) bool {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// AsRemote extracts a RemoteError from err if one is in its chain.
func AsRemote(err error) (RemoteError, bool) {
	var remote RemoteError
	ok := errors.As(err, &remote)
	return remote, ok
}
