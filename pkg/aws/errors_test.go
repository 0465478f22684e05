package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAPIError(t *testing.T) {
	assert.NoError(t, wrapAPIError("DescribeAddresses", nil))

	sdkErr := &smithy.GenericAPIError{Code: "InvalidAllocationID.NotFound", Message: "The allocation ID 'eipalloc-1' does not exist"}
	err := wrapAPIError("ReleaseAddress", fmt.Errorf("operation error EC2: ReleaseAddress: %w", sdkErr))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ReleaseAddress", apiErr.Op)
	assert.Equal(t, "InvalidAllocationID.NotFound", apiErr.Code)
	assert.Equal(t, "ReleaseAddress: InvalidAllocationID.NotFound: The allocation ID 'eipalloc-1' does not exist", err.Error())
}

func TestWrapAPIErrorWithoutCode(t *testing.T) {
	err := wrapAPIError("AllocateAddress", errors.New("connection reset"))
	assert.Equal(t, "AllocateAddress: connection reset", err.Error())
	assert.Equal(t, "", ErrorCode(err))
}

func TestIsErrorCode(t *testing.T) {
	err := fmt.Errorf("context: %w", wrapAPIError("X", &smithy.GenericAPIError{Code: "Throttling"}))

	assert.True(t, IsErrorCode(err, "RequestLimitExceeded", "Throttling"))
	assert.False(t, IsErrorCode(err, "AuthFailure"))
	assert.False(t, IsErrorCode(nil, "Throttling"))

	// raw smithy errors are recognized too
	assert.Equal(t, "AuthFailure", ErrorCode(&smithy.GenericAPIError{Code: "AuthFailure"}))
}
