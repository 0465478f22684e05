package eip

import (
	"context"
	"fmt"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
)

// Associator binds addresses to devices and severs those bindings.
type Associator struct {
	api     CloudAPI
	locator *Locator
	dryRun  bool
}

// NewAssociator returns an Associator. In dry-run mode it only reads.
func NewAssociator(api CloudAPI, dryRun bool) *Associator {
	return &Associator{api: api, locator: NewLocator(api), dryRun: dryRun}
}

// IsAssociated reports whether address is currently attached to device,
// according to a fresh lookup rather than the copy passed in.
func (a *Associator) IsAssociated(ctx context.Context, address models.Address, device Device) (bool, error) {
	current, err := a.attachedTo(ctx, address, device)
	return current != nil, err
}

// attachedTo returns the current state of address if it is attached to
// device, nil otherwise.
func (a *Associator) attachedTo(ctx context.Context, address models.Address, device Device) (*models.Address, error) {
	current, err := a.locator.Locate(ctx, address.PublicIP, device)
	if err != nil || current == nil || !device.attached(*current) {
		return nil, err
	}
	return current, nil
}

// Associate attaches address to device unless it already is. The returned
// flag is true when an association was (or, in dry-run mode, would be) made.
func (a *Associator) Associate(ctx context.Context, address models.Address, device Device, allowReassociation bool, privateIP string) (bool, error) {
	associated, err := a.IsAssociated(ctx, address, device)
	if err != nil {
		return false, err
	}
	if associated {
		return false, nil
	}

	entry := log.WithFields(log.Fields{
		"public_ip": address.PublicIP,
		"device":    device.ID(),
	})
	if a.dryRun {
		entry.Info("would associate address")
		return true, nil
	}

	req := device.associateRequest(address, allowReassociation, privateIP)
	associationID, err := a.api.AssociateAddress(ctx, req)
	if err != nil {
		return false, fmt.Errorf("couldn't associate Elastic IP address with %s '%s': %w", device.Kind(), device.ID(), err)
	}

	entry.WithField("association_id", associationID).Info("associated address")
	return true, nil
}

// Disassociate detaches address from device if it is attached. VPC
// associations are removed by association id; standard addresses by public
// IP, which the EC2 API still accepts for EC2-Classic addresses.
func (a *Associator) Disassociate(ctx context.Context, address models.Address, device Device) (bool, error) {
	current, err := a.attachedTo(ctx, address, device)
	if err != nil || current == nil {
		return false, err
	}

	entry := log.WithFields(log.Fields{
		"public_ip": address.PublicIP,
		"device":    device.ID(),
	})
	if a.dryRun {
		entry.Info("would disassociate address")
		return true, nil
	}

	req := models.DisassociateAddressRequest{}
	if current.IsVPC() {
		req.AssociationID = current.AssociationID
	} else {
		req.PublicIP = current.PublicIP
	}

	if err := a.api.DisassociateAddress(ctx, req); err != nil {
		return false, fmt.Errorf("disassociation of Elastic IP %s failed: %w", address.PublicIP, err)
	}

	entry.Info("disassociated address")
	return true, nil
}
