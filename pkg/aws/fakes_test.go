package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// fakeEC2 records the inputs it receives and answers from canned data
type fakeEC2 struct {
	addresses []types.Address
	tags      []types.TagDescription
	instances []types.Instance
	enis      []types.NetworkInterface
	err       error

	allocateOut *ec2.AllocateAddressOutput

	describeIn     *ec2.DescribeAddressesInput
	allocateIn     *ec2.AllocateAddressInput
	associateIn    *ec2.AssociateAddressInput
	disassociateIn *ec2.DisassociateAddressInput
	releaseIn      *ec2.ReleaseAddressInput
	createTagsIn   *ec2.CreateTagsInput
	deleteTagsIn   *ec2.DeleteTagsInput
}

func (f *fakeEC2) DescribeAddresses(_ context.Context, in *ec2.DescribeAddressesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
	f.describeIn = in
	if f.err != nil {
		return nil, f.err
	}
	if len(in.PublicIps) == 0 {
		return &ec2.DescribeAddressesOutput{Addresses: f.addresses}, nil
	}

	// EC2 rejects lookups of public IPs it does not own.
	var found []types.Address
	for _, ip := range in.PublicIps {
		match := false
		for _, a := range f.addresses {
			if aws.ToString(a.PublicIp) == ip {
				found = append(found, a)
				match = true
			}
		}
		if !match {
			return nil, &smithy.GenericAPIError{
				Code:    "InvalidAddress.NotFound",
				Message: fmt.Sprintf("Address '%s' not found.", ip),
			}
		}
	}
	return &ec2.DescribeAddressesOutput{Addresses: found}, nil
}

func (f *fakeEC2) AllocateAddress(_ context.Context, in *ec2.AllocateAddressInput, _ ...func(*ec2.Options)) (*ec2.AllocateAddressOutput, error) {
	f.allocateIn = in
	if f.err != nil {
		return nil, f.err
	}
	return f.allocateOut, nil
}

func (f *fakeEC2) AssociateAddress(_ context.Context, in *ec2.AssociateAddressInput, _ ...func(*ec2.Options)) (*ec2.AssociateAddressOutput, error) {
	f.associateIn = in
	if f.err != nil {
		return nil, f.err
	}
	id := "eipassoc-1"
	return &ec2.AssociateAddressOutput{AssociationId: &id}, nil
}

func (f *fakeEC2) DisassociateAddress(_ context.Context, in *ec2.DisassociateAddressInput, _ ...func(*ec2.Options)) (*ec2.DisassociateAddressOutput, error) {
	f.disassociateIn = in
	return &ec2.DisassociateAddressOutput{}, f.err
}

func (f *fakeEC2) ReleaseAddress(_ context.Context, in *ec2.ReleaseAddressInput, _ ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error) {
	f.releaseIn = in
	if f.err != nil {
		return nil, f.err
	}
	kept := f.addresses[:0]
	for _, a := range f.addresses {
		if in.AllocationId != nil && aws.ToString(a.AllocationId) == aws.ToString(in.AllocationId) {
			continue
		}
		if in.PublicIp != nil && aws.ToString(a.PublicIp) == aws.ToString(in.PublicIp) {
			continue
		}
		kept = append(kept, a)
	}
	f.addresses = kept
	return &ec2.ReleaseAddressOutput{}, nil
}

func (f *fakeEC2) DescribeInstances(_ context.Context, _ *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.instances) == 0 {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: f.instances}},
	}, nil
}

func (f *fakeEC2) DescribeNetworkInterfaces(_ context.Context, _ *ec2.DescribeNetworkInterfacesInput, _ ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ec2.DescribeNetworkInterfacesOutput{NetworkInterfaces: f.enis}, nil
}

func (f *fakeEC2) DescribeTags(_ context.Context, _ *ec2.DescribeTagsInput, _ ...func(*ec2.Options)) (*ec2.DescribeTagsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ec2.DescribeTagsOutput{Tags: f.tags}, nil
}

func (f *fakeEC2) CreateTags(_ context.Context, in *ec2.CreateTagsInput, _ ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	f.createTagsIn = in
	return &ec2.CreateTagsOutput{}, nil
}

func (f *fakeEC2) DeleteTags(_ context.Context, in *ec2.DeleteTagsInput, _ ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error) {
	f.deleteTagsIn = in
	return &ec2.DeleteTagsOutput{}, nil
}

// fakeLambda serves ListLayers and ListLayerVersions in pages keyed by marker
type fakeLambda struct {
	layerPages   map[string]*lambda.ListLayersOutput
	versionPages map[string]*lambda.ListLayerVersionsOutput
	err          error

	listLayersIn   []*lambda.ListLayersInput
	listVersionsIn []*lambda.ListLayerVersionsInput
	publishIn      *lambda.PublishLayerVersionInput
	deleteIn       *lambda.DeleteLayerVersionInput
}

func marker(m *string) string {
	if m == nil {
		return ""
	}
	return *m
}

func (f *fakeLambda) ListLayers(_ context.Context, in *lambda.ListLayersInput, _ ...func(*lambda.Options)) (*lambda.ListLayersOutput, error) {
	f.listLayersIn = append(f.listLayersIn, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.layerPages[marker(in.Marker)], nil
}

func (f *fakeLambda) ListLayerVersions(_ context.Context, in *lambda.ListLayerVersionsInput, _ ...func(*lambda.Options)) (*lambda.ListLayerVersionsOutput, error) {
	f.listVersionsIn = append(f.listVersionsIn, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.versionPages[marker(in.Marker)], nil
}

func (f *fakeLambda) PublishLayerVersion(_ context.Context, in *lambda.PublishLayerVersionInput, _ ...func(*lambda.Options)) (*lambda.PublishLayerVersionOutput, error) {
	f.publishIn = in
	if f.err != nil {
		return nil, f.err
	}
	arn := "arn:aws:lambda:eu-west-2:123456789012:layer:" + *in.LayerName
	versionArn := arn + ":3"
	created := "2022-09-29T10:31:26.341+0000"
	location := "https://awslambda-eu-west-2-layers.s3.amazonaws.com/snapshots/x"
	return &lambda.PublishLayerVersionOutput{
		LayerArn:           &arn,
		LayerVersionArn:    &versionArn,
		Version:            3,
		CreatedDate:        &created,
		Description:        in.Description,
		CompatibleRuntimes: in.CompatibleRuntimes,
		Content: &lambdaTypes.LayerVersionContentOutput{
			Location: &location,
			CodeSize: 9473675,
		},
	}, nil
}

func (f *fakeLambda) DeleteLayerVersion(_ context.Context, in *lambda.DeleteLayerVersionInput, _ ...func(*lambda.Options)) (*lambda.DeleteLayerVersionOutput, error) {
	f.deleteIn = in
	return &lambda.DeleteLayerVersionOutput{}, f.err
}

// fakeS3 answers HeadObject with err
type fakeS3 struct {
	err    error
	headIn *s3.HeadObjectInput
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.headIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadObjectOutput{}, nil
}
