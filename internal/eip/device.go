package eip

import (
	"context"
	"fmt"
	"strings"

	"github.com/younsl/awsmods/internal/models"
)

// Device is an EC2 instance or an elastic network interface that an address
// can be associated with.
type Device interface {
	// ID returns the AWS id of the device.
	ID() string
	// Kind names the device type in messages.
	Kind() string

	filterName() string
	attached(address models.Address) bool
	associateRequest(address models.Address, allowReassociation bool, privateIP string) models.AssociateAddressRequest
	lookup(ctx context.Context, api CloudAPI) (*models.DeviceInfo, error)
}

// Instance is an EC2 instance, id prefix "i-".
type Instance struct {
	InstanceID string
}

func (i Instance) ID() string   { return i.InstanceID }
func (i Instance) Kind() string { return "instance" }

func (i Instance) filterName() string { return "instance-id" }

func (i Instance) attached(address models.Address) bool {
	return address.InstanceID == i.InstanceID
}

// VPC addresses are associated by allocation id, EC2-Classic addresses by
// their public IP.
func (i Instance) associateRequest(address models.Address, allowReassociation bool, privateIP string) models.AssociateAddressRequest {
	req := models.AssociateAddressRequest{
		InstanceID:         i.InstanceID,
		PrivateIPAddress:   privateIP,
		AllowReassociation: allowReassociation,
	}
	if address.IsVPC() {
		req.AllocationID = address.AllocationID
	} else {
		req.PublicIP = address.PublicIP
	}
	return req
}

func (i Instance) lookup(ctx context.Context, api CloudAPI) (*models.DeviceInfo, error) {
	info, err := api.DescribeInstance(ctx, i.InstanceID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get list of instances: %w", err)
	}
	return info, nil
}

// NetworkInterface is an elastic network interface, id prefix "eni-".
// Interfaces only exist in a VPC.
type NetworkInterface struct {
	InterfaceID string
}

func (n NetworkInterface) ID() string   { return n.InterfaceID }
func (n NetworkInterface) Kind() string { return "network interface" }

func (n NetworkInterface) filterName() string { return "network-interface-id" }

func (n NetworkInterface) attached(address models.Address) bool {
	return address.NetworkInterfaceID == n.InterfaceID
}

func (n NetworkInterface) associateRequest(address models.Address, allowReassociation bool, privateIP string) models.AssociateAddressRequest {
	return models.AssociateAddressRequest{
		NetworkInterfaceID: n.InterfaceID,
		AllocationID:       address.AllocationID,
		PrivateIPAddress:   privateIP,
		AllowReassociation: allowReassociation,
	}
}

func (n NetworkInterface) lookup(ctx context.Context, api CloudAPI) (*models.DeviceInfo, error) {
	info, err := api.DescribeNetworkInterface(ctx, n.InterfaceID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get list of network interfaces: %w", err)
	}
	return info, nil
}

// ParseDevice picks the device variant from the id prefix. An empty id means
// no device. Ids that are not instances are treated as network interfaces;
// an "eni-" id requires the vpc domain.
func ParseDevice(id, domain string) (Device, error) {
	switch {
	case id == "":
		return nil, nil
	case strings.HasPrefix(id, "i-"):
		return Instance{InstanceID: id}, nil
	case strings.HasPrefix(id, "eni-") && domain != models.DomainVPC:
		return nil, &InvalidCombinationError{Reason: "If you are specifying an ENI, in_vpc must be true"}
	default:
		return NetworkInterface{InterfaceID: id}, nil
	}
}
