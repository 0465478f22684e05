package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLambdaTimestamp(t *testing.T) {
	ts := ParseLambdaTimestamp("2022-09-29T10:31:26.341+0000")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2022, 9, 29, 10, 31, 26, 341000000, time.UTC), ts.UTC())

	ts = ParseLambdaTimestamp("2022-09-29T10:31:26Z")
	require.NotNil(t, ts)
	assert.Equal(t, 2022, ts.Year())

	assert.Nil(t, ParseLambdaTimestamp(""))
	assert.Nil(t, ParseLambdaTimestamp("yesterday"))
}
