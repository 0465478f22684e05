package layer

import (
	"context"
	"fmt"

	"github.com/younsl/awsmods/internal/models"
)

// InfoResult is the output of a listing.
type InfoResult struct {
	Changed        bool                  `json:"changed" yaml:"changed"`
	LayersVersions []models.LayerVersion `json:"layers_versions" yaml:"layers_versions"`
}

// Lister lists layers, or the versions of one layer.
type Lister struct {
	api LambdaAPI
}

// NewLister returns a Lister reading from api.
func NewLister(api LambdaAPI) *Lister {
	return &Lister{api: api}
}

// List returns every version of query.Name when a name is given, otherwise
// the latest matching version of every layer. Listing never changes anything.
func (l *Lister) List(ctx context.Context, query models.LayerQuery) (*InfoResult, error) {
	var (
		versions []models.LayerVersion
		err      error
	)

	if query.Name != "" {
		versions, err = l.api.ListLayerVersions(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("Unable to list layer versions for name %s: %w", query.Name, err)
		}
	} else {
		versions, err = l.api.ListLayers(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("Unable to list layers: %w", err)
		}
	}

	if versions == nil {
		versions = []models.LayerVersion{}
	}
	return &InfoResult{Changed: false, LayersVersions: versions}, nil
}
