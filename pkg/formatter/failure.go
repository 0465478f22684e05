package formatter

import (
	"io"

	"github.com/younsl/awsmods/pkg/aws"
)

// Failure is the payload written when a command fails.
type Failure struct {
	Failed    bool   `json:"failed" yaml:"failed"`
	Msg       string `json:"msg" yaml:"msg"`
	ErrorCode string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	// Partial carries what was already done before the failure, if anything.
	Partial interface{} `json:"result,omitempty" yaml:"result,omitempty"`
}

// NewFailure builds the failure payload for err. The AWS error code is
// included when the chain carries one.
func NewFailure(err error, partial interface{}) Failure {
	return Failure{
		Failed:    true,
		Msg:       err.Error(),
		ErrorCode: aws.ErrorCode(err),
		Partial:   partial,
	}
}

// WriteFailure renders the failure payload. Tables are not used for failures.
func WriteFailure(w io.Writer, f Format, failure Failure) error {
	if f == FormatTable {
		f = FormatJSON
	}
	return Render(w, f, failure, nil)
}
