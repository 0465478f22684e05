package config

import (
	"github.com/younsl/awsmods/internal/layer"
	"github.com/younsl/awsmods/internal/models"
)

// LayerInfoParams are the parameters of the lambda-layer-info command.
type LayerInfoParams struct {
	Name                   string `yaml:"name"`
	LayerName              string `yaml:"layer_name"`
	CompatibleRuntime      string `yaml:"compatible_runtime"`
	CompatibleArchitecture string `yaml:"compatible_architecture"`
}

// Query converts the parameters.
func (p LayerInfoParams) Query() (models.LayerQuery, error) {
	if err := mergeAlias(&p.Name, &p.LayerName, "name", "layer_name"); err != nil {
		return models.LayerQuery{}, err
	}
	return models.LayerQuery{
		Name:                   p.Name,
		CompatibleRuntime:      p.CompatibleRuntime,
		CompatibleArchitecture: p.CompatibleArchitecture,
	}, nil
}

// LayerParams are the parameters of the lambda-layer command.
type LayerParams struct {
	State                   string         `yaml:"state"`
	Name                    string         `yaml:"name"`
	LayerName               string         `yaml:"layer_name"`
	Description             string         `yaml:"description"`
	Content                 *layer.Content `yaml:"content"`
	CompatibleRuntimes      []string       `yaml:"compatible_runtimes"`
	LicenseInfo             string         `yaml:"license_info"`
	CompatibleArchitectures []string       `yaml:"compatible_architectures"`
	Version                 *int64         `yaml:"version"`
	VerifyContent           bool           `yaml:"verify_content"`
}

// DefaultLayerParams returns the parameters used when nothing is given.
func DefaultLayerParams() LayerParams {
	return LayerParams{State: layer.StatePresent}
}

// Request converts and validates the parameters.
func (p LayerParams) Request() (layer.Request, error) {
	if err := mergeAlias(&p.Name, &p.LayerName, "name", "layer_name"); err != nil {
		return layer.Request{}, err
	}
	if p.State == "" {
		p.State = layer.StatePresent
	}

	req := layer.Request{
		State:                   p.State,
		Name:                    p.Name,
		Description:             p.Description,
		Content:                 p.Content,
		CompatibleRuntimes:      p.CompatibleRuntimes,
		LicenseInfo:             p.LicenseInfo,
		CompatibleArchitectures: p.CompatibleArchitectures,
		Version:                 p.Version,
		VerifyContent:           p.VerifyContent,
	}
	if err := req.Validate(); err != nil {
		return layer.Request{}, err
	}
	return req, nil
}
