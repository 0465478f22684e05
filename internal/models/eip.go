package models

// Address domains
const (
	DomainStandard = "standard"
	DomainVPC      = "vpc"
)

// Address represents an Elastic IP address as reported by EC2
type Address struct {
	PublicIP           string            `json:"public_ip" yaml:"public_ip"`
	AllocationID       string            `json:"allocation_id,omitempty" yaml:"allocation_id,omitempty"`
	Domain             string            `json:"domain" yaml:"domain"`
	AssociationID      string            `json:"association_id,omitempty" yaml:"association_id,omitempty"`
	InstanceID         string            `json:"instance_id,omitempty" yaml:"instance_id,omitempty"`
	NetworkInterfaceID string            `json:"network_interface_id,omitempty" yaml:"network_interface_id,omitempty"`
	PrivateIPAddress   string            `json:"private_ip_address,omitempty" yaml:"private_ip_address,omitempty"`
	PublicIPv4Pool     string            `json:"public_ipv4_pool,omitempty" yaml:"public_ipv4_pool,omitempty"`
	NetworkBorderGroup string            `json:"network_border_group,omitempty" yaml:"network_border_group,omitempty"`
	Tags               map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsVPC reports whether the address was allocated for use in a VPC
func (a Address) IsVPC() bool {
	return a.Domain == DomainVPC
}

// IsAssociated reports whether the address is bound to any device.
// VPC addresses carry an association id, standard addresses only an instance id.
func (a Address) IsAssociated() bool {
	if a.IsVPC() {
		return a.AssociationID != ""
	}
	return a.InstanceID != ""
}

// EIPInfo represents an Elastic IP address row in the regional listing
type EIPInfo struct {
	AllocationID         string  `json:"allocation_id,omitempty" yaml:"allocation_id,omitempty"`
	PublicIP             string  `json:"public_ip" yaml:"public_ip"`
	Domain               string  `json:"domain" yaml:"domain"`
	AssociationID        string  `json:"association_id,omitempty" yaml:"association_id,omitempty"`
	AssociationState     string  `json:"association_state" yaml:"association_state"`
	InstanceID           string  `json:"instance_id,omitempty" yaml:"instance_id,omitempty"`
	NetworkInterfaceID   string  `json:"network_interface_id,omitempty" yaml:"network_interface_id,omitempty"`
	Name                 string  `json:"name,omitempty" yaml:"name,omitempty"`
	Region               string  `json:"region" yaml:"region"`
	EstimatedMonthlyCost float64 `json:"estimated_monthly_cost" yaml:"estimated_monthly_cost"`
}
