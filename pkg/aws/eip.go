package aws

import (
	"context"

	"github.com/younsl/awsmods/internal/models"
)

// UnattachedMonthlyCost is the fixed monthly charge for an idle public IPv4
// address ($0.005 per hour)
const UnattachedMonthlyCost = 3.60

// ListAddresses returns every Elastic IP in the client's region. With
// unattachedOnly, addresses bound to a device are skipped.
func (c *EC2Client) ListAddresses(ctx context.Context, unattachedOnly bool) ([]models.EIPInfo, error) {
	addresses, err := c.DescribeAddresses(ctx, models.AddressQuery{})
	if err != nil {
		return nil, err
	}

	eips := []models.EIPInfo{}
	for _, address := range addresses {
		attached := address.IsAssociated()
		if unattachedOnly && attached {
			continue
		}

		eipInfo := models.EIPInfo{
			AllocationID:       address.AllocationID,
			PublicIP:           address.PublicIP,
			Domain:             address.Domain,
			AssociationID:      address.AssociationID,
			AssociationState:   "Unattached",
			InstanceID:         address.InstanceID,
			NetworkInterfaceID: address.NetworkInterfaceID,
			Name:               address.Tags["Name"],
			Region:             c.region,
		}
		if attached {
			eipInfo.AssociationState = "Attached"
		} else {
			eipInfo.EstimatedMonthlyCost = UnattachedMonthlyCost
		}

		eips = append(eips, eipInfo)
	}

	return eips, nil
}
