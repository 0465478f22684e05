package eip

import (
	"context"
	"fmt"
	"strings"

	"github.com/younsl/awsmods/internal/models"
)

// fakeCloud is an in-memory EC2 address store. Mutating calls update the
// store so that repeated reconciliations observe their own effects.
type fakeCloud struct {
	addresses []models.Address
	instances map[string]models.DeviceInfo
	enis      map[string]models.DeviceInfo

	describeErr error
	allocateErr error
	releaseErr  error

	calls         []string
	allocated     []models.AllocateAddressRequest
	associated    []models.AssociateAddressRequest
	disassociated []models.DisassociateAddressRequest
	released      []models.ReleaseAddressRequest

	nextID int
}

func (f *fakeCloud) record(name string) {
	f.calls = append(f.calls, name)
}

// mutations lists the calls that change cloud state.
func (f *fakeCloud) mutations() []string {
	var out []string
	for _, c := range f.calls {
		switch c {
		case "AllocateAddress", "AssociateAddress", "DisassociateAddress", "ReleaseAddress":
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCloud) DescribeAddresses(_ context.Context, query models.AddressQuery) ([]models.Address, error) {
	f.record("DescribeAddresses")
	if f.describeErr != nil {
		return nil, f.describeErr
	}

	var out []models.Address
	for _, a := range f.addresses {
		if matches(a, query) {
			out = append(out, a)
		}
	}
	return out, nil
}

func matches(a models.Address, query models.AddressQuery) bool {
	if len(query.PublicIPs) > 0 && !contains(query.PublicIPs, a.PublicIP) {
		return false
	}
	for name, values := range query.Filters {
		switch {
		case name == "domain":
			if !contains(values, a.Domain) {
				return false
			}
		case name == "instance-id":
			if !contains(values, a.InstanceID) {
				return false
			}
		case name == "network-interface-id":
			if !contains(values, a.NetworkInterfaceID) {
				return false
			}
		case name == "tag-key":
			if _, ok := a.Tags[values[0]]; !ok {
				return false
			}
		case strings.HasPrefix(name, "tag:"):
			if a.Tags[strings.TrimPrefix(name, "tag:")] != values[0] {
				return false
			}
		default:
			panic("unexpected filter " + name)
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func (f *fakeCloud) AllocateAddress(_ context.Context, req models.AllocateAddressRequest) (*models.Address, error) {
	f.record("AllocateAddress")
	f.allocated = append(f.allocated, req)
	if f.allocateErr != nil {
		return nil, f.allocateErr
	}

	f.nextID++
	address := models.Address{
		PublicIP:       fmt.Sprintf("198.51.100.%d", f.nextID),
		Domain:         req.Domain,
		PublicIPv4Pool: req.PublicIPv4Pool,
		Tags:           req.Tags,
	}
	if req.Domain == models.DomainVPC {
		address.AllocationID = fmt.Sprintf("eipalloc-%04d", f.nextID)
	}
	f.addresses = append(f.addresses, address)
	return &address, nil
}

func (f *fakeCloud) find(allocationID, publicIP string) *models.Address {
	for i := range f.addresses {
		a := &f.addresses[i]
		if (allocationID != "" && a.AllocationID == allocationID) || (publicIP != "" && a.PublicIP == publicIP) {
			return a
		}
	}
	return nil
}

func (f *fakeCloud) AssociateAddress(_ context.Context, req models.AssociateAddressRequest) (string, error) {
	f.record("AssociateAddress")
	f.associated = append(f.associated, req)

	a := f.find(req.AllocationID, req.PublicIP)
	if a == nil {
		return "", fmt.Errorf("InvalidAllocationID.NotFound")
	}
	a.InstanceID = req.InstanceID
	a.NetworkInterfaceID = req.NetworkInterfaceID
	a.PrivateIPAddress = req.PrivateIPAddress
	if a.IsVPC() {
		a.AssociationID = "eipassoc-" + strings.TrimPrefix(a.AllocationID, "eipalloc-")
		return a.AssociationID, nil
	}
	return "", nil
}

func (f *fakeCloud) DisassociateAddress(_ context.Context, req models.DisassociateAddressRequest) error {
	f.record("DisassociateAddress")
	f.disassociated = append(f.disassociated, req)

	for i := range f.addresses {
		a := &f.addresses[i]
		if (req.AssociationID != "" && a.AssociationID == req.AssociationID) || (req.PublicIP != "" && a.PublicIP == req.PublicIP) {
			a.AssociationID = ""
			a.InstanceID = ""
			a.NetworkInterfaceID = ""
			a.PrivateIPAddress = ""
		}
	}
	return nil
}

func (f *fakeCloud) ReleaseAddress(_ context.Context, req models.ReleaseAddressRequest) error {
	f.record("ReleaseAddress")
	f.released = append(f.released, req)
	if f.releaseErr != nil {
		return f.releaseErr
	}

	kept := f.addresses[:0]
	for _, a := range f.addresses {
		if (req.AllocationID != "" && a.AllocationID == req.AllocationID) || (req.PublicIP != "" && a.PublicIP == req.PublicIP) {
			continue
		}
		kept = append(kept, a)
	}
	f.addresses = kept
	return nil
}

func (f *fakeCloud) DescribeInstance(_ context.Context, id string) (*models.DeviceInfo, error) {
	f.record("DescribeInstance")
	if info, ok := f.instances[id]; ok {
		return &info, nil
	}
	return nil, nil
}

func (f *fakeCloud) DescribeNetworkInterface(_ context.Context, id string) (*models.DeviceInfo, error) {
	f.record("DescribeNetworkInterface")
	if info, ok := f.enis[id]; ok {
		return &info, nil
	}
	return nil, nil
}

// fakeTags records EnsureTags calls.
type fakeTags struct {
	calls   int
	changed bool
	err     error

	resourceID string
	tags       map[string]string
	purge      bool
	dryRun     bool
}

func (f *fakeTags) EnsureTags(_ context.Context, resourceID, _ string, tags map[string]string, purge, dryRun bool) (bool, error) {
	f.calls++
	f.resourceID = resourceID
	f.tags = tags
	f.purge = purge
	f.dryRun = dryRun
	return f.changed, f.err
}
