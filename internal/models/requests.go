package models

// AddressQuery selects addresses for DescribeAddresses.
// PublicIPs and Filters may be combined; an empty query lists every address.
type AddressQuery struct {
	PublicIPs []string
	Filters   map[string][]string
}

// AllocateAddressRequest describes a new Elastic IP allocation
type AllocateAddressRequest struct {
	Domain         string
	PublicIPv4Pool string
	Tags           map[string]string
}

// AssociateAddressRequest binds an address to an instance or network interface.
// Exactly one of InstanceID and NetworkInterfaceID is set, and exactly one of
// AllocationID and PublicIP identifies the address.
type AssociateAddressRequest struct {
	InstanceID         string
	NetworkInterfaceID string
	AllocationID       string
	PublicIP           string
	PrivateIPAddress   string
	AllowReassociation bool
}

// DisassociateAddressRequest severs an association. VPC addresses are keyed by
// AssociationID, standard addresses by PublicIP.
type DisassociateAddressRequest struct {
	AssociationID string
	PublicIP      string
}

// ReleaseAddressRequest returns an address to AWS. VPC addresses are keyed by
// AllocationID, standard addresses by PublicIP.
type ReleaseAddressRequest struct {
	AllocationID string
	PublicIP     string
}
