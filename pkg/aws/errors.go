package aws

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// APIError is a failed AWS API call. Code and Message come from the service
// when it returned a structured error.
type APIError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// wrapAPIError converts an SDK error into an *APIError for operation op
func wrapAPIError(op string, err error) error {
	if err == nil {
		return nil
	}

	apiErr := &APIError{Op: op, Err: err}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		apiErr.Code = ae.ErrorCode()
		apiErr.Message = ae.ErrorMessage()
	}
	return apiErr
}

// ErrorCode returns the AWS error code carried by err, or "" if there is none
func ErrorCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}

// IsErrorCode reports whether err carries one of the given AWS error codes
func IsErrorCode(err error, codes ...string) bool {
	code := ErrorCode(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
