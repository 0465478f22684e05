package models

// LayerVersion represents one version of a Lambda layer.
// LayerName and LayerArn are only set when listing layers without a name.
type LayerVersion struct {
	LayerName               string   `json:"layer_name,omitempty" yaml:"layer_name,omitempty"`
	LayerArn                string   `json:"layer_arn,omitempty" yaml:"layer_arn,omitempty"`
	LayerVersionArn         string   `json:"layer_version_arn,omitempty" yaml:"layer_version_arn,omitempty"`
	Version                 int64    `json:"version,omitempty" yaml:"version,omitempty"`
	Description             string   `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedDate             string   `json:"created_date,omitempty" yaml:"created_date,omitempty"`
	CompatibleRuntimes      []string `json:"compatible_runtimes,omitempty" yaml:"compatible_runtimes,omitempty"`
	LicenseInfo             string   `json:"license_info,omitempty" yaml:"license_info,omitempty"`
	CompatibleArchitectures []string `json:"compatible_architectures,omitempty" yaml:"compatible_architectures,omitempty"`

	// Set only for a freshly published version
	Content *LayerContent `json:"content,omitempty" yaml:"content,omitempty"`
}

// LayerContent describes the archive behind a published layer version
type LayerContent struct {
	Location                 string `json:"location,omitempty" yaml:"location,omitempty"`
	CodeSha256               string `json:"code_sha256,omitempty" yaml:"code_sha256,omitempty"`
	CodeSize                 int64  `json:"code_size,omitempty" yaml:"code_size,omitempty"`
	SigningProfileVersionArn string `json:"signing_profile_version_arn,omitempty" yaml:"signing_profile_version_arn,omitempty"`
	SigningJobArn            string `json:"signing_job_arn,omitempty" yaml:"signing_job_arn,omitempty"`
}

// LayerQuery filters layer listings
type LayerQuery struct {
	Name                   string
	CompatibleRuntime      string
	CompatibleArchitecture string
}

// PublishLayerRequest describes a new layer version. Either the S3 location or
// ZipFile holds the archive.
type PublishLayerRequest struct {
	Name                    string
	Description             string
	CompatibleRuntimes      []string
	LicenseInfo             string
	CompatibleArchitectures []string
	S3Bucket                string
	S3Key                   string
	S3ObjectVersion         string
	ZipFile                 []byte
}
