package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 service client used to check layer archives
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Client struct for S3 client
type S3Client struct {
	client S3API
	region string
}

// NewS3Client creates a new S3Client from a loaded SDK config
func NewS3Client(cfg aws.Config) *S3Client {
	return &S3Client{
		client: s3.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// NewS3ClientWithAPI wraps an existing S3API implementation
func NewS3ClientWithAPI(api S3API, region string) *S3Client {
	return &S3Client{client: api, region: region}
}

// ObjectExists checks that bucket/key (optionally at versionID) can be read
func (c *S3Client) ObjectExists(ctx context.Context, bucket, key, versionID string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}

	_, err := c.client.HeadObject(ctx, input)
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object s3://%s/%s: %w", bucket, key, wrapAPIError("HeadObject", err))
	}
	return true, nil
}

// isNotFoundError checks if the error is a missing bucket or object
func isNotFoundError(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	return IsErrorCode(err, "NotFound", "NoSuchKey", "NoSuchBucket", "404")
}
