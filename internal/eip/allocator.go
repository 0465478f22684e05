package eip

import (
	"context"
	"fmt"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
)

// AllocateParams selects how an address is obtained.
type AllocateParams struct {
	Domain         string
	ReuseExisting  bool
	TagFilter      *TagFilter
	PublicIPv4Pool string
	Tags           map[string]string
}

// Allocator obtains addresses (reusing, allocating from a BYOIP pool or
// allocating from Amazon's pool) and releases them.
type Allocator struct {
	api    CloudAPI
	dryRun bool
}

// NewAllocator returns an Allocator. In dry-run mode it only reads.
func NewAllocator(api CloudAPI, dryRun bool) *Allocator {
	return &Allocator{api: api, dryRun: dryRun}
}

// Allocate returns an address and whether a new one was allocated.
//
// With ReuseExisting the first unassociated address of the domain (narrowed
// by TagFilter) is returned unchanged. Otherwise a new address is allocated,
// from PublicIPv4Pool when set, tagged with Tags at creation. In dry-run mode
// nothing is allocated and (nil, true) means an allocation would happen.
func (a *Allocator) Allocate(ctx context.Context, p AllocateParams) (*models.Address, bool, error) {
	domain := p.Domain
	if domain == "" {
		domain = models.DomainStandard
	}

	if p.ReuseExisting {
		address, err := a.findReusable(ctx, domain, p.TagFilter)
		if err != nil {
			return nil, false, err
		}
		if address != nil {
			log.WithFields(log.Fields{
				"public_ip": address.PublicIP,
				"domain":    domain,
			}).Info("reusing unassociated address")
			return address, false, nil
		}
	}

	if a.dryRun {
		log.WithField("domain", domain).Info("would allocate address")
		return nil, true, nil
	}

	req := models.AllocateAddressRequest{
		Domain:         domain,
		PublicIPv4Pool: p.PublicIPv4Pool,
		Tags:           p.Tags,
	}
	address, err := a.api.AllocateAddress(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("couldn't allocate Elastic IP address: %w", err)
	}
	return address, true, nil
}

// findReusable returns the first address of domain that is not associated
// with anything, in the order AWS lists them.
func (a *Allocator) findReusable(ctx context.Context, domain string, filter *TagFilter) (*models.Address, error) {
	filters := map[string][]string{"domain": {domain}}
	filter.apply(filters)

	addresses, err := a.api.DescribeAddresses(ctx, models.AddressQuery{Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("couldn't obtain list of existing Elastic IP addresses: %w", err)
	}

	for i := range addresses {
		if !associatedInDomain(addresses[i], domain) {
			return &addresses[i], nil
		}
	}
	return nil, nil
}

// associatedInDomain applies the association test of the requested domain:
// vpc addresses by association id, standard addresses by instance id.
func associatedInDomain(address models.Address, domain string) bool {
	if domain == models.DomainVPC {
		return address.AssociationID != ""
	}
	return address.InstanceID != ""
}

// Release returns address to AWS. It reports true whenever a release was
// needed, including in dry-run mode.
func (a *Allocator) Release(ctx context.Context, address models.Address) (bool, error) {
	entry := log.WithFields(log.Fields{
		"public_ip":     address.PublicIP,
		"allocation_id": address.AllocationID,
	})
	if a.dryRun {
		entry.Info("would release address")
		return true, nil
	}

	req := models.ReleaseAddressRequest{}
	if address.IsVPC() {
		req.AllocationID = address.AllocationID
	} else {
		req.PublicIP = address.PublicIP
	}

	if err := a.api.ReleaseAddress(ctx, req); err != nil {
		return false, fmt.Errorf("couldn't release Elastic IP address %s: %w", address.PublicIP, err)
	}

	entry.Info("released address")
	return true, nil
}
