package utils

import (
	"time"
)

// lambdaTimestampLayout is the format Lambda uses for CreatedDate and
// LastModified, e.g. "2022-09-29T10:31:26.341+0000"
const lambdaTimestampLayout = "2006-01-02T15:04:05.000-0700"

// ParseLambdaTimestamp parses a Lambda timestamp. RFC3339 is accepted too.
// Returns nil when the value cannot be parsed.
func ParseLambdaTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}

	for _, layout := range []string{lambdaTimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
