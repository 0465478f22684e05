package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
	"github.com/younsl/awsmods/pkg/utils"
)

// EC2API is the subset of the EC2 service client used by awsmods
type EC2API interface {
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	AllocateAddress(ctx context.Context, params *ec2.AllocateAddressInput, optFns ...func(*ec2.Options)) (*ec2.AllocateAddressOutput, error)
	AssociateAddress(ctx context.Context, params *ec2.AssociateAddressInput, optFns ...func(*ec2.Options)) (*ec2.AssociateAddressOutput, error)
	DisassociateAddress(ctx context.Context, params *ec2.DisassociateAddressInput, optFns ...func(*ec2.Options)) (*ec2.DisassociateAddressOutput, error)
	ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeNetworkInterfaces(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error)
	DescribeTags(ctx context.Context, params *ec2.DescribeTagsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeTagsOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DeleteTags(ctx context.Context, params *ec2.DeleteTagsInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error)
}

// EC2Client struct for EC2 client
type EC2Client struct {
	client EC2API
	region string
}

// NewEC2Client creates a new EC2Client from a loaded SDK config
func NewEC2Client(cfg aws.Config) *EC2Client {
	return &EC2Client{
		client: ec2.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// NewEC2ClientWithAPI wraps an existing EC2API implementation
func NewEC2ClientWithAPI(api EC2API, region string) *EC2Client {
	return &EC2Client{client: api, region: region}
}

// Region returns the region the client talks to
func (c *EC2Client) Region() string {
	return c.region
}

// DescribeAddresses returns the addresses matching the query, in API order.
// An unknown public IP yields no addresses rather than an error.
func (c *EC2Client) DescribeAddresses(ctx context.Context, query models.AddressQuery) ([]models.Address, error) {
	input := &ec2.DescribeAddressesInput{
		PublicIps: query.PublicIPs,
		Filters:   toFilters(query.Filters),
	}

	result, err := c.client.DescribeAddresses(ctx, input)
	if err != nil {
		if IsErrorCode(err, "InvalidAddress.NotFound") {
			return []models.Address{}, nil
		}
		return nil, wrapAPIError("DescribeAddresses", err)
	}

	addresses := make([]models.Address, 0, len(result.Addresses))
	for _, a := range result.Addresses {
		addresses = append(addresses, toAddress(a))
	}

	log.WithFields(log.Fields{
		"public_ips": query.PublicIPs,
		"filters":    len(input.Filters),
		"found":      len(addresses),
	}).Debug("described addresses")

	return addresses, nil
}

// AllocateAddress allocates a new Elastic IP, tagging it at creation
func (c *EC2Client) AllocateAddress(ctx context.Context, req models.AllocateAddressRequest) (*models.Address, error) {
	input := &ec2.AllocateAddressInput{
		TagSpecifications: utils.TagSpecifications(types.ResourceTypeElasticIp, req.Tags),
	}
	if req.Domain != "" {
		input.Domain = types.DomainType(req.Domain)
	}
	if req.PublicIPv4Pool != "" {
		input.PublicIpv4Pool = aws.String(req.PublicIPv4Pool)
	}

	result, err := c.client.AllocateAddress(ctx, input)
	if err != nil {
		return nil, wrapAPIError("AllocateAddress", err)
	}

	address := &models.Address{
		PublicIP:           aws.ToString(result.PublicIp),
		AllocationID:       aws.ToString(result.AllocationId),
		Domain:             string(result.Domain),
		PublicIPv4Pool:     aws.ToString(result.PublicIpv4Pool),
		NetworkBorderGroup: aws.ToString(result.NetworkBorderGroup),
		Tags:               req.Tags,
	}
	if address.Domain == "" {
		address.Domain = req.Domain
	}

	log.WithFields(log.Fields{
		"public_ip":     address.PublicIP,
		"allocation_id": address.AllocationID,
		"pool":          req.PublicIPv4Pool,
	}).Info("allocated address")

	return address, nil
}

// AssociateAddress binds an address to a device and returns the association id
func (c *EC2Client) AssociateAddress(ctx context.Context, req models.AssociateAddressRequest) (string, error) {
	input := &ec2.AssociateAddressInput{
		AllowReassociation: aws.Bool(req.AllowReassociation),
	}
	if req.InstanceID != "" {
		input.InstanceId = aws.String(req.InstanceID)
	}
	if req.NetworkInterfaceID != "" {
		input.NetworkInterfaceId = aws.String(req.NetworkInterfaceID)
	}
	if req.AllocationID != "" {
		input.AllocationId = aws.String(req.AllocationID)
	}
	if req.PublicIP != "" {
		input.PublicIp = aws.String(req.PublicIP)
	}
	if req.PrivateIPAddress != "" {
		input.PrivateIpAddress = aws.String(req.PrivateIPAddress)
	}

	result, err := c.client.AssociateAddress(ctx, input)
	if err != nil {
		return "", wrapAPIError("AssociateAddress", err)
	}

	return aws.ToString(result.AssociationId), nil
}

// DisassociateAddress severs an association by association id or public IP
func (c *EC2Client) DisassociateAddress(ctx context.Context, req models.DisassociateAddressRequest) error {
	input := &ec2.DisassociateAddressInput{}
	if req.AssociationID != "" {
		input.AssociationId = aws.String(req.AssociationID)
	} else {
		input.PublicIp = aws.String(req.PublicIP)
	}

	if _, err := c.client.DisassociateAddress(ctx, input); err != nil {
		return wrapAPIError("DisassociateAddress", err)
	}
	return nil
}

// ReleaseAddress releases an address by allocation id or public IP
func (c *EC2Client) ReleaseAddress(ctx context.Context, req models.ReleaseAddressRequest) error {
	input := &ec2.ReleaseAddressInput{}
	if req.AllocationID != "" {
		input.AllocationId = aws.String(req.AllocationID)
	} else {
		input.PublicIp = aws.String(req.PublicIP)
	}

	if _, err := c.client.ReleaseAddress(ctx, input); err != nil {
		return wrapAPIError("ReleaseAddress", err)
	}
	return nil
}

// DescribeInstance looks up one instance. Returns nil if AWS reports none.
func (c *EC2Client) DescribeInstance(ctx context.Context, id string) (*models.DeviceInfo, error) {
	result, err := c.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return nil, wrapAPIError("DescribeInstances", err)
	}

	if len(result.Reservations) != 1 || len(result.Reservations[0].Instances) != 1 {
		return nil, nil
	}

	instance := result.Reservations[0].Instances[0]
	info := &models.DeviceInfo{
		ID:               aws.ToString(instance.InstanceId),
		VpcID:            aws.ToString(instance.VpcId),
		SubnetID:         aws.ToString(instance.SubnetId),
		PrivateIPAddress: aws.ToString(instance.PrivateIpAddress),
	}
	if instance.State != nil {
		info.State = string(instance.State.Name)
	}
	return info, nil
}

// DescribeNetworkInterface looks up one network interface. Returns nil if AWS
// reports none.
func (c *EC2Client) DescribeNetworkInterface(ctx context.Context, id string) (*models.DeviceInfo, error) {
	result, err := c.client.DescribeNetworkInterfaces(ctx, &ec2.DescribeNetworkInterfacesInput{
		NetworkInterfaceIds: []string{id},
	})
	if err != nil {
		return nil, wrapAPIError("DescribeNetworkInterfaces", err)
	}

	if len(result.NetworkInterfaces) != 1 {
		return nil, nil
	}

	eni := result.NetworkInterfaces[0]
	return &models.DeviceInfo{
		ID:               aws.ToString(eni.NetworkInterfaceId),
		VpcID:            aws.ToString(eni.VpcId),
		SubnetID:         aws.ToString(eni.SubnetId),
		PrivateIPAddress: aws.ToString(eni.PrivateIpAddress),
		State:            string(eni.Status),
	}, nil
}

// EnsureTags makes the tags of a resource match tags. A nil map leaves the
// resource alone. With purge, tags missing from the map are removed (aws:
// tags excepted). In dry-run mode the change is computed but not applied.
func (c *EC2Client) EnsureTags(ctx context.Context, resourceID, resourceType string, tags map[string]string, purge, dryRun bool) (bool, error) {
	if tags == nil {
		return false, nil
	}

	current, err := c.describeTags(ctx, resourceID, resourceType)
	if err != nil {
		return false, err
	}

	toSet, toRemove := utils.CompareTags(current, tags, purge)
	if len(toSet) == 0 && len(toRemove) == 0 {
		return false, nil
	}

	entry := log.WithFields(log.Fields{
		"resource": resourceID,
		"set":      len(toSet),
		"remove":   len(toRemove),
		"dry_run":  dryRun,
	})
	if dryRun {
		entry.Info("tags would change")
		return true, nil
	}

	if len(toRemove) > 0 {
		removeTags := make([]types.Tag, 0, len(toRemove))
		for _, key := range toRemove {
			removeTags = append(removeTags, types.Tag{Key: aws.String(key)})
		}
		_, err := c.client.DeleteTags(ctx, &ec2.DeleteTagsInput{
			Resources: []string{resourceID},
			Tags:      removeTags,
		})
		if err != nil {
			return false, fmt.Errorf("couldn't remove tags from %s: %w", resourceID, wrapAPIError("DeleteTags", err))
		}
	}

	if len(toSet) > 0 {
		_, err := c.client.CreateTags(ctx, &ec2.CreateTagsInput{
			Resources: []string{resourceID},
			Tags:      utils.ConvertToEC2Tags(toSet),
		})
		if err != nil {
			return false, fmt.Errorf("couldn't add tags to %s: %w", resourceID, wrapAPIError("CreateTags", err))
		}
	}

	entry.Info("tags updated")
	return true, nil
}

// describeTags returns the current tags of one resource
func (c *EC2Client) describeTags(ctx context.Context, resourceID, resourceType string) (map[string]string, error) {
	filters := []types.Filter{{
		Name:   aws.String("resource-id"),
		Values: []string{resourceID},
	}}
	if resourceType != "" {
		filters = append(filters, types.Filter{
			Name:   aws.String("resource-type"),
			Values: []string{resourceType},
		})
	}

	tags := make(map[string]string)
	paginator := ec2.NewDescribeTagsPaginator(c.client, &ec2.DescribeTagsInput{Filters: filters})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't list tags of %s: %w", resourceID, wrapAPIError("DescribeTags", err))
		}
		for _, tag := range page.Tags {
			tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return tags, nil
}

// toFilters converts a filter map into EC2 filters sorted by name
func toFilters(filters map[string][]string) []types.Filter {
	if len(filters) == 0 {
		return nil
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]types.Filter, 0, len(names))
	for _, name := range names {
		result = append(result, types.Filter{
			Name:   aws.String(name),
			Values: filters[name],
		})
	}
	return result
}

// toAddress converts an SDK address into the model
func toAddress(a types.Address) models.Address {
	address := models.Address{
		PublicIP:           aws.ToString(a.PublicIp),
		AllocationID:       aws.ToString(a.AllocationId),
		Domain:             string(a.Domain),
		AssociationID:      aws.ToString(a.AssociationId),
		InstanceID:         aws.ToString(a.InstanceId),
		NetworkInterfaceID: aws.ToString(a.NetworkInterfaceId),
		PrivateIPAddress:   aws.ToString(a.PrivateIpAddress),
		PublicIPv4Pool:     aws.ToString(a.PublicIpv4Pool),
		NetworkBorderGroup: aws.ToString(a.NetworkBorderGroup),
	}
	if len(a.Tags) > 0 {
		address.Tags = utils.GetTagsMap(a.Tags)
	}
	return address
}
