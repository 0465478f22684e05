// Package layer lists, publishes and deletes Lambda layer versions.
package layer

import (
	"context"

	"github.com/younsl/awsmods/internal/models"
)

// Desired states
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// LambdaAPI is the Lambda surface used by this package.
type LambdaAPI interface {
	ListLayers(ctx context.Context, query models.LayerQuery) ([]models.LayerVersion, error)
	ListLayerVersions(ctx context.Context, query models.LayerQuery) ([]models.LayerVersion, error)
	PublishLayerVersion(ctx context.Context, req models.PublishLayerRequest) (*models.LayerVersion, error)
	DeleteLayerVersion(ctx context.Context, name string, version int64) error
}

// ObjectChecker reports whether an S3 object exists.
type ObjectChecker interface {
	ObjectExists(ctx context.Context, bucket, key, versionID string) (bool, error)
}

// ValidationError is returned for parameter combinations that can never
// succeed. No API call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
