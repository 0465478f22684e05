package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

// IMDSAPI is the subset of the instance metadata client we use
type IMDSAPI interface {
	GetInstanceIdentityDocument(ctx context.Context, params *imds.GetInstanceIdentityDocumentInput, optFns ...func(*imds.Options)) (*imds.GetInstanceIdentityDocumentOutput, error)
}

// InstanceIdentity is the part of the identity document awsmods needs
type InstanceIdentity struct {
	InstanceID string
	Region     string
}

// NewIMDSClient returns a metadata client with SDK defaults
func NewIMDSClient() IMDSAPI {
	return imds.New(imds.Options{})
}

// GetInstanceIdentity asks the metadata service which instance we are running on
func GetInstanceIdentity(ctx context.Context, client IMDSAPI) (*InstanceIdentity, error) {
	out, err := client.GetInstanceIdentityDocument(ctx, &imds.GetInstanceIdentityDocumentInput{})
	if err != nil {
		return nil, fmt.Errorf("error reading instance identity document: %w", err)
	}

	return &InstanceIdentity{
		InstanceID: out.InstanceID,
		Region:     out.Region,
	}, nil
}
