package eip

import (
	"fmt"
	"strings"

	"github.com/younsl/awsmods/internal/models"
)

// AmbiguousMatchError is returned when a lookup that must identify a single
// address matches several.
type AmbiguousMatchError struct {
	Criteria string
	Matches  []models.Address
}

func (e *AmbiguousMatchError) Error() string {
	ips := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		ips = append(ips, m.PublicIP)
	}
	return fmt.Sprintf("found more than one address using %s, addresses found: %s", e.Criteria, strings.Join(ips, ", "))
}

// InvalidCombinationError is returned for requests that can never succeed.
// It is always raised before any call to the cloud API, except for the
// instance VPC check, which needs the instance description.
type InvalidCombinationError struct {
	Reason string
}

func (e *InvalidCombinationError) Error() string {
	return e.Reason
}
