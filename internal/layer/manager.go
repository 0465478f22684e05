package layer

import (
	"context"
	"fmt"
	"os"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
)

// CheckModeMessage is reported when a publish is skipped in dry-run mode.
const CheckModeMessage = "Create operation skipped - running in check mode"

// Content locates the layer archive: an S3 object or a local zip file.
type Content struct {
	S3Bucket        string `json:"s3_bucket,omitempty" yaml:"s3_bucket,omitempty"`
	S3Key           string `json:"s3_key,omitempty" yaml:"s3_key,omitempty"`
	S3ObjectVersion string `json:"s3_object_version,omitempty" yaml:"s3_object_version,omitempty"`
	ZipFile         string `json:"zip_file,omitempty" yaml:"zip_file,omitempty"`
}

// Request describes a publish (present) or a delete (absent).
type Request struct {
	State                   string
	Name                    string
	Description             string
	Content                 *Content
	CompatibleRuntimes      []string
	LicenseInfo             string
	CompatibleArchitectures []string
	Version                 *int64
	VerifyContent           bool
}

// Validate rejects impossible requests.
func (r Request) Validate() error {
	if r.Name == "" {
		return &ValidationError{Reason: "missing required arguments: name"}
	}

	if r.Version != nil {
		conflicts := []struct {
			name string
			set  bool
		}{
			{"description", r.Description != ""},
			{"content", r.Content != nil},
			{"compatible_runtimes", len(r.CompatibleRuntimes) > 0},
			{"license_info", r.LicenseInfo != ""},
			{"compatible_architectures", len(r.CompatibleArchitectures) > 0},
		}
		for _, c := range conflicts {
			if c.set {
				return &ValidationError{Reason: fmt.Sprintf("parameters are mutually exclusive: version|%s", c.name)}
			}
		}
	}

	switch r.State {
	case StatePresent:
		if r.Content == nil {
			return &ValidationError{Reason: "state is present but all of the following are missing: content"}
		}
		return r.Content.validate()
	case StateAbsent:
		if r.Version == nil {
			return &ValidationError{Reason: "state is absent but all of the following are missing: version"}
		}
		return nil
	default:
		return &ValidationError{Reason: "state must be one of: present, absent"}
	}
}

func (c Content) validate() error {
	switch {
	case c.S3Bucket != "" && c.ZipFile != "":
		return &ValidationError{Reason: "parameters are mutually exclusive: s3_bucket|zip_file found in content"}
	case (c.S3Bucket == "") != (c.S3Key == ""):
		return &ValidationError{Reason: "parameters are required together: s3_bucket, s3_key found in content"}
	case c.S3Bucket == "" && c.ZipFile == "":
		return &ValidationError{Reason: "one of the following is required: s3_bucket, zip_file found in content"}
	}
	return nil
}

// Result is the output of a publish or delete.
type Result struct {
	Changed      bool                 `json:"changed" yaml:"changed"`
	Msg          string               `json:"msg,omitempty" yaml:"msg,omitempty"`
	LayerVersion *models.LayerVersion `json:"layer_version,omitempty" yaml:"layer_version,omitempty"`
}

// Manager publishes and deletes layer versions.
type Manager struct {
	api     LambdaAPI
	objects ObjectChecker
	dryRun  bool
}

// NewManager returns a Manager. objects may be nil when archives are never
// verified.
func NewManager(api LambdaAPI, objects ObjectChecker, dryRun bool) *Manager {
	return &Manager{api: api, objects: objects, dryRun: dryRun}
}

// Apply validates req and publishes or deletes accordingly.
func (m *Manager) Apply(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.State == StateAbsent {
		return m.Delete(ctx, req.Name, *req.Version)
	}
	return m.Publish(ctx, req)
}

// Publish creates a new version of the layer. Every call publishes, so the
// result is always changed.
func (m *Manager) Publish(ctx context.Context, req Request) (*Result, error) {
	if m.dryRun {
		log.WithField("layer", req.Name).Info("would publish layer version")
		return &Result{Changed: true, Msg: CheckModeMessage}, nil
	}

	publish := models.PublishLayerRequest{
		Name:                    req.Name,
		Description:             req.Description,
		CompatibleRuntimes:      req.CompatibleRuntimes,
		LicenseInfo:             req.LicenseInfo,
		CompatibleArchitectures: req.CompatibleArchitectures,
	}

	content := req.Content
	if content.ZipFile != "" {
		data, err := os.ReadFile(content.ZipFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read zip file %s: %w", content.ZipFile, err)
		}
		publish.ZipFile = data
	} else {
		if req.VerifyContent {
			if err := m.verify(ctx, *content); err != nil {
				return nil, err
			}
		}
		publish.S3Bucket = content.S3Bucket
		publish.S3Key = content.S3Key
		publish.S3ObjectVersion = content.S3ObjectVersion
	}

	version, err := m.api.PublishLayerVersion(ctx, publish)
	if err != nil {
		return nil, fmt.Errorf("failed to publish a new layer version (check that you have required permissions): %w", err)
	}
	version.LayerName = req.Name
	return &Result{Changed: true, LayerVersion: version}, nil
}

func (m *Manager) verify(ctx context.Context, c Content) error {
	if m.objects == nil {
		return nil
	}
	exists, err := m.objects.ObjectExists(ctx, c.S3Bucket, c.S3Key, c.S3ObjectVersion)
	if err != nil {
		return fmt.Errorf("couldn't check layer archive s3://%s/%s: %w", c.S3Bucket, c.S3Key, err)
	}
	if !exists {
		return &ValidationError{Reason: fmt.Sprintf("layer archive s3://%s/%s does not exist", c.S3Bucket, c.S3Key)}
	}
	return nil
}

// Delete removes one version of the layer if it is listed. Deleting a version
// that does not exist is not a change.
func (m *Manager) Delete(ctx context.Context, name string, version int64) (*Result, error) {
	versions, err := m.api.ListLayerVersions(ctx, models.LayerQuery{Name: name})
	if err != nil {
		return nil, fmt.Errorf("Unable to list layer versions for name %s: %w", name, err)
	}

	for i := range versions {
		if versions[i].Version != version {
			continue
		}

		found := versions[i]
		entry := log.WithFields(log.Fields{"layer": name, "version": version})
		if m.dryRun {
			entry.Info("would delete layer version")
			return &Result{Changed: true, LayerVersion: &found}, nil
		}
		if err := m.api.DeleteLayerVersion(ctx, name, version); err != nil {
			return nil, fmt.Errorf("failed to delete layer version: %w", err)
		}
		return &Result{Changed: true, LayerVersion: &found}, nil
	}

	log.WithFields(log.Fields{"layer": name, "version": version}).Debug("layer version not found")
	return &Result{Changed: false}, nil
}
