package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
)

// LambdaAPI is the subset of the Lambda service client used for layers
type LambdaAPI interface {
	ListLayers(ctx context.Context, params *lambda.ListLayersInput, optFns ...func(*lambda.Options)) (*lambda.ListLayersOutput, error)
	ListLayerVersions(ctx context.Context, params *lambda.ListLayerVersionsInput, optFns ...func(*lambda.Options)) (*lambda.ListLayerVersionsOutput, error)
	PublishLayerVersion(ctx context.Context, params *lambda.PublishLayerVersionInput, optFns ...func(*lambda.Options)) (*lambda.PublishLayerVersionOutput, error)
	DeleteLayerVersion(ctx context.Context, params *lambda.DeleteLayerVersionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteLayerVersionOutput, error)
}

// LambdaClient struct for Lambda client
type LambdaClient struct {
	client LambdaAPI
	region string
}

// NewLambdaClient creates a new LambdaClient from a loaded SDK config
func NewLambdaClient(cfg aws.Config) *LambdaClient {
	return &LambdaClient{
		client: lambda.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// NewLambdaClientWithAPI wraps an existing LambdaAPI implementation
func NewLambdaClientWithAPI(api LambdaAPI, region string) *LambdaClient {
	return &LambdaClient{client: api, region: region}
}

// ListLayers returns the latest matching version of every layer, following
// NextMarker until the listing is complete
func (c *LambdaClient) ListLayers(ctx context.Context, query models.LayerQuery) ([]models.LayerVersion, error) {
	input := &lambda.ListLayersInput{}
	if query.CompatibleRuntime != "" {
		input.CompatibleRuntime = lambdaTypes.Runtime(query.CompatibleRuntime)
	}
	if query.CompatibleArchitecture != "" {
		input.CompatibleArchitecture = lambdaTypes.Architecture(query.CompatibleArchitecture)
	}

	var versions []models.LayerVersion
	paginator := lambda.NewListLayersPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapAPIError("ListLayers", err)
		}

		for _, layer := range page.Layers {
			version := models.LayerVersion{}
			if layer.LatestMatchingVersion != nil {
				version = toLayerVersion(*layer.LatestMatchingVersion)
			}
			version.LayerName = aws.ToString(layer.LayerName)
			version.LayerArn = aws.ToString(layer.LayerArn)
			versions = append(versions, version)
		}
	}

	log.WithFields(log.Fields{
		"region": c.region,
		"layers": len(versions),
	}).Debug("listed layers")

	return versions, nil
}

// ListLayerVersions returns every live version of the named layer, newest first
// as Lambda orders them
func (c *LambdaClient) ListLayerVersions(ctx context.Context, query models.LayerQuery) ([]models.LayerVersion, error) {
	input := &lambda.ListLayerVersionsInput{
		LayerName: aws.String(query.Name),
	}
	if query.CompatibleRuntime != "" {
		input.CompatibleRuntime = lambdaTypes.Runtime(query.CompatibleRuntime)
	}
	if query.CompatibleArchitecture != "" {
		input.CompatibleArchitecture = lambdaTypes.Architecture(query.CompatibleArchitecture)
	}

	var versions []models.LayerVersion
	paginator := lambda.NewListLayerVersionsPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapAPIError("ListLayerVersions", err)
		}
		for _, item := range page.LayerVersions {
			versions = append(versions, toLayerVersion(item))
		}
	}

	log.WithFields(log.Fields{
		"layer":    query.Name,
		"versions": len(versions),
	}).Debug("listed layer versions")

	return versions, nil
}

// PublishLayerVersion creates a new version of a layer
func (c *LambdaClient) PublishLayerVersion(ctx context.Context, req models.PublishLayerRequest) (*models.LayerVersion, error) {
	content := &lambdaTypes.LayerVersionContentInput{}
	if req.S3Bucket != "" {
		content.S3Bucket = aws.String(req.S3Bucket)
		content.S3Key = aws.String(req.S3Key)
		if req.S3ObjectVersion != "" {
			content.S3ObjectVersion = aws.String(req.S3ObjectVersion)
		}
	}
	if req.ZipFile != nil {
		content.ZipFile = req.ZipFile
	}

	input := &lambda.PublishLayerVersionInput{
		LayerName: aws.String(req.Name),
		Content:   content,
	}
	if req.Description != "" {
		input.Description = aws.String(req.Description)
	}
	if req.LicenseInfo != "" {
		input.LicenseInfo = aws.String(req.LicenseInfo)
	}
	for _, runtime := range req.CompatibleRuntimes {
		input.CompatibleRuntimes = append(input.CompatibleRuntimes, lambdaTypes.Runtime(runtime))
	}
	for _, arch := range req.CompatibleArchitectures {
		input.CompatibleArchitectures = append(input.CompatibleArchitectures, lambdaTypes.Architecture(arch))
	}

	result, err := c.client.PublishLayerVersion(ctx, input)
	if err != nil {
		return nil, wrapAPIError("PublishLayerVersion", err)
	}

	version := &models.LayerVersion{
		LayerArn:                aws.ToString(result.LayerArn),
		LayerVersionArn:         aws.ToString(result.LayerVersionArn),
		Version:                 result.Version,
		Description:             aws.ToString(result.Description),
		CreatedDate:             aws.ToString(result.CreatedDate),
		LicenseInfo:             aws.ToString(result.LicenseInfo),
		CompatibleRuntimes:      runtimesToStrings(result.CompatibleRuntimes),
		CompatibleArchitectures: architecturesToStrings(result.CompatibleArchitectures),
	}
	if result.Content != nil {
		version.Content = &models.LayerContent{
			Location:                 aws.ToString(result.Content.Location),
			CodeSha256:               aws.ToString(result.Content.CodeSha256),
			CodeSize:                 result.Content.CodeSize,
			SigningProfileVersionArn: aws.ToString(result.Content.SigningProfileVersionArn),
			SigningJobArn:            aws.ToString(result.Content.SigningJobArn),
		}
	}

	log.WithFields(log.Fields{
		"layer":   req.Name,
		"version": version.Version,
	}).Info("published layer version")

	return version, nil
}

// DeleteLayerVersion deletes one version of a layer
func (c *LambdaClient) DeleteLayerVersion(ctx context.Context, name string, version int64) error {
	_, err := c.client.DeleteLayerVersion(ctx, &lambda.DeleteLayerVersionInput{
		LayerName:     aws.String(name),
		VersionNumber: aws.Int64(version),
	})
	if err != nil {
		return wrapAPIError("DeleteLayerVersion", err)
	}

	log.WithFields(log.Fields{
		"layer":   name,
		"version": version,
	}).Info("deleted layer version")
	return nil
}

// toLayerVersion converts an SDK listing item into the model
func toLayerVersion(item lambdaTypes.LayerVersionsListItem) models.LayerVersion {
	return models.LayerVersion{
		LayerVersionArn:         aws.ToString(item.LayerVersionArn),
		Version:                 item.Version,
		Description:             aws.ToString(item.Description),
		CreatedDate:             aws.ToString(item.CreatedDate),
		LicenseInfo:             aws.ToString(item.LicenseInfo),
		CompatibleRuntimes:      runtimesToStrings(item.CompatibleRuntimes),
		CompatibleArchitectures: architecturesToStrings(item.CompatibleArchitectures),
	}
}

func runtimesToStrings(runtimes []lambdaTypes.Runtime) []string {
	if len(runtimes) == 0 {
		return nil
	}
	result := make([]string, 0, len(runtimes))
	for _, r := range runtimes {
		result = append(result, string(r))
	}
	return result
}

func architecturesToStrings(archs []lambdaTypes.Architecture) []string {
	if len(archs) == 0 {
		return nil
	}
	result := make([]string, 0, len(archs))
	for _, a := range archs {
		result = append(result, string(a))
	}
	return result
}
