package models

// DeviceInfo is what the EIP reconciler needs to know about an instance or
// network interface
type DeviceInfo struct {
	ID               string // i-... or eni-...
	VpcID            string // empty for EC2-Classic instances
	SubnetID         string
	PrivateIPAddress string
	State            string // instance state name or interface status
}
