package eip

import (
	"context"
	"fmt"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
)

// Locator finds the single address identified by a public IP or by the
// device it is attached to.
type Locator struct {
	api CloudAPI
}

// NewLocator returns a Locator reading from api.
func NewLocator(api CloudAPI) *Locator {
	return &Locator{api: api}
}

// Locate returns the address with publicIP or, when publicIP is empty, the
// address attached to device. It returns nil when nothing matches or when
// neither criterion is given, and an *AmbiguousMatchError when several do.
func (l *Locator) Locate(ctx context.Context, publicIP string, device Device) (*models.Address, error) {
	var query models.AddressQuery
	var criteria string

	switch {
	case publicIP != "":
		query.PublicIPs = []string{publicIP}
		criteria = fmt.Sprintf("public ip %s", publicIP)
	case device != nil:
		query.Filters = map[string][]string{device.filterName(): {device.ID()}}
		criteria = fmt.Sprintf("%s=%s", device.filterName(), device.ID())
	default:
		return nil, nil
	}

	addresses, err := l.api.DescribeAddresses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("couldn't obtain list of existing Elastic IP addresses: %w", err)
	}

	switch len(addresses) {
	case 0:
		log.WithField("criteria", criteria).Debug("no address found")
		return nil, nil
	case 1:
		log.WithFields(log.Fields{
			"criteria":  criteria,
			"public_ip": addresses[0].PublicIP,
		}).Debug("address found")
		return &addresses[0], nil
	default:
		return nil, &AmbiguousMatchError{Criteria: criteria, Matches: addresses}
	}
}
