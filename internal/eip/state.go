package eip

import (
	"context"
	"strings"

	"github.com/younsl/awsmods/internal/models"
	"github.com/younsl/awsmods/pkg/utils"
)

// Desired states
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// ResourceType is the EC2 resource type of Elastic IP allocations, used for
// tagging
const ResourceType = "elastic-ip"

// CloudAPI is the EC2 surface the reconciler needs. Implementations report
// failures as errors carrying the AWS error code.
type CloudAPI interface {
	DescribeAddresses(ctx context.Context, query models.AddressQuery) ([]models.Address, error)
	AllocateAddress(ctx context.Context, req models.AllocateAddressRequest) (*models.Address, error)
	AssociateAddress(ctx context.Context, req models.AssociateAddressRequest) (string, error)
	DisassociateAddress(ctx context.Context, req models.DisassociateAddressRequest) error
	ReleaseAddress(ctx context.Context, req models.ReleaseAddressRequest) error
	DescribeInstance(ctx context.Context, id string) (*models.DeviceInfo, error)
	DescribeNetworkInterface(ctx context.Context, id string) (*models.DeviceInfo, error)
}

// TagReconciler makes the tags of a resource match a desired set. A nil tag
// map means tags are not managed.
type TagReconciler interface {
	EnsureTags(ctx context.Context, resourceID, resourceType string, tags map[string]string, purge, dryRun bool) (bool, error)
}

// TagFilter narrows address reuse to addresses carrying a tag key, or a key
// with an exact value.
type TagFilter struct {
	Key   string
	Value string
}

// NewTagFilter builds a filter from the tag_name / tag_value pair. Both empty
// means no filter; a value without a name is rejected.
func NewTagFilter(name, value string) (*TagFilter, error) {
	if name == "" {
		if value != "" {
			return nil, &InvalidCombinationError{Reason: "parameters are required together: tag_name, tag_value"}
		}
		return nil, nil
	}
	return &TagFilter{Key: name, Value: value}, nil
}

func (f *TagFilter) apply(filters map[string][]string) {
	if f == nil {
		return
	}
	name, values := utils.TagFilter(f.Key, f.Value)
	filters[name] = values
}

// DesiredState is one reconciliation request. It is not modified during the
// call.
type DesiredState struct {
	State  string
	Device Device

	PublicIP       string
	Domain         string
	ReuseExisting  bool
	TagFilter      *TagFilter
	PublicIPv4Pool string

	AllowReassociation      bool
	ReleaseOnDisassociation bool
	PrivateIPAddress        string

	Tags      map[string]string
	PurgeTags bool

	DryRun bool
}

// Validate rejects impossible requests without touching the cloud API.
func (d DesiredState) Validate() error {
	switch d.State {
	case StatePresent, StateAbsent:
	default:
		return &InvalidCombinationError{Reason: "state must be one of: present, absent"}
	}

	switch d.Domain {
	case "", models.DomainStandard, models.DomainVPC:
	default:
		return &InvalidCombinationError{Reason: "domain must be one of: standard, vpc"}
	}

	if eni, ok := d.Device.(NetworkInterface); ok && strings.HasPrefix(eni.InterfaceID, "eni-") && d.domain() != models.DomainVPC {
		return &InvalidCombinationError{Reason: "If you are specifying an ENI, in_vpc must be true"}
	}

	if d.PrivateIPAddress != "" && d.Device == nil {
		return &InvalidCombinationError{Reason: "missing parameter(s) required by 'private_ip_address': device_id"}
	}

	if d.TagFilter != nil && d.TagFilter.Key == "" {
		return &InvalidCombinationError{Reason: "parameters are required together: tag_name, tag_value"}
	}

	return nil
}

func (d DesiredState) domain() string {
	if d.Domain == "" {
		return models.DomainStandard
	}
	return d.Domain
}

// Result reports what a reconciliation did. Disassociated and Released are
// only reported for state absent.
type Result struct {
	Changed       bool   `json:"changed" yaml:"changed"`
	PublicIP      string `json:"public_ip,omitempty" yaml:"public_ip,omitempty"`
	AllocationID  string `json:"allocation_id,omitempty" yaml:"allocation_id,omitempty"`
	Disassociated *bool  `json:"disassociated,omitempty" yaml:"disassociated,omitempty"`
	Released      *bool  `json:"released,omitempty" yaml:"released,omitempty"`
}

func absentResult(disassociated, released bool) *Result {
	return &Result{
		Changed:       disassociated || released,
		Disassociated: &disassociated,
		Released:      &released,
	}
}
