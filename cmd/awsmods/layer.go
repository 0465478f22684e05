package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/younsl/awsmods/internal/config"
	"github.com/younsl/awsmods/internal/layer"
	"github.com/younsl/awsmods/pkg/aws"
	"github.com/younsl/awsmods/pkg/formatter"
)

func newLayerInfoCmd(opts *globalOptions) *cobra.Command {
	var flagValues config.LayerInfoParams

	cmd := &cobra.Command{
		Use:   "lambda-layer-info",
		Short: "List Lambda layers or the versions of one layer",
		Example: `  # Latest version of every layer
  awsmods lambda-layer-info -o table

  # All versions of one layer compatible with python3.12
  awsmods lambda-layer-info --name python-deps --compatible-runtime python3.12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var params config.LayerInfoParams
			if err := loadParams(cmd, opts, &params, &flagValues); err != nil {
				return err
			}
			query, err := params.Query()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := loadAWSConfig(ctx, opts, "", false)
			if err != nil {
				return err
			}

			stop := startSpinner("Listing Lambda layers")
			result, err := layer.NewLister(aws.NewLambdaClient(cfg)).List(ctx, query)
			stop("")
			if err != nil {
				return err
			}

			return writeResult(opts, result, func(w io.Writer) error {
				if err := formatter.WriteLayersTable(w, result.LayersVersions); err != nil {
					return err
				}
				return formatter.WriteLayersSummary(w, result.LayersVersions)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&flagValues.Name, "name", "", "Layer name or ARN; lists all its versions")
	f.StringVar(&flagValues.CompatibleRuntime, "compatible-runtime", "", "Only versions compatible with this runtime")
	f.StringVar(&flagValues.CompatibleArchitecture, "compatible-architecture", "", "Only versions compatible with this architecture")
	return cmd
}

// layerFlags are the flags of lambda-layer that have no direct params field
type layerFlags struct {
	version         int64
	s3Bucket        string
	s3Key           string
	s3ObjectVersion string
	zipFile         string
}

func newLayerCmd(opts *globalOptions) *cobra.Command {
	flagValues := config.DefaultLayerParams()
	var extra layerFlags

	cmd := &cobra.Command{
		Use:   "lambda-layer",
		Short: "Publish or delete a Lambda layer version",
		Example: `  # Publish a version from an archive in S3
  awsmods lambda-layer --name python-deps --s3-bucket layers --s3-key deps.zip --compatible-runtimes python3.12

  # Delete version 3
  awsmods lambda-layer --state absent --name python-deps --version 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := config.DefaultLayerParams()
			if err := loadParams(cmd, opts, &params, &flagValues); err != nil {
				return err
			}
			applyLayerFlags(cmd, &params, extra)

			req, err := params.Request()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := loadAWSConfig(ctx, opts, "", false)
			if err != nil {
				return err
			}

			manager := layer.NewManager(aws.NewLambdaClient(cfg), aws.NewS3Client(cfg), opts.check)
			stop := startSpinner("Applying Lambda layer")
			result, err := manager.Apply(ctx, req)
			stop("")
			if err != nil {
				return err
			}

			return writeResult(opts, result, func(w io.Writer) error {
				return formatter.WriteLayerResult(w, result)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&flagValues.State, "state", layer.StatePresent, "present publishes a new version, absent deletes --version")
	f.StringVar(&flagValues.Name, "name", "", "Layer name")
	f.StringVar(&flagValues.Description, "description", "", "Description of the version")
	f.StringSliceVar(&flagValues.CompatibleRuntimes, "compatible-runtimes", nil, "Compatible runtimes")
	f.StringVar(&flagValues.LicenseInfo, "license-info", "", "License of the layer")
	f.StringSliceVar(&flagValues.CompatibleArchitectures, "compatible-architectures", nil, "Compatible architectures")
	f.BoolVar(&flagValues.VerifyContent, "verify-content", false, "Check that the S3 archive exists before publishing")
	f.Int64Var(&extra.version, "version", 0, "Version to delete")
	f.StringVar(&extra.s3Bucket, "s3-bucket", "", "Bucket of the layer archive")
	f.StringVar(&extra.s3Key, "s3-key", "", "Key of the layer archive")
	f.StringVar(&extra.s3ObjectVersion, "s3-object-version", "", "Object version of the layer archive")
	f.StringVar(&extra.zipFile, "zip-file", "", "Local path of the layer archive")
	return cmd
}

// applyLayerFlags sets the version and content parameters from flags. It runs
// after the generic overlay, which leaves version unset.
func applyLayerFlags(cmd *cobra.Command, params *config.LayerParams, extra layerFlags) {
	f := cmd.Flags()
	if f.Changed("version") {
		v := extra.version
		params.Version = &v
	}

	contentFlags := []struct {
		name  string
		value string
		dst   func(c *layer.Content) *string
	}{
		{"s3-bucket", extra.s3Bucket, func(c *layer.Content) *string { return &c.S3Bucket }},
		{"s3-key", extra.s3Key, func(c *layer.Content) *string { return &c.S3Key }},
		{"s3-object-version", extra.s3ObjectVersion, func(c *layer.Content) *string { return &c.S3ObjectVersion }},
		{"zip-file", extra.zipFile, func(c *layer.Content) *string { return &c.ZipFile }},
	}
	for _, cf := range contentFlags {
		if !f.Changed(cf.name) {
			continue
		}
		if params.Content == nil {
			params.Content = &layer.Content{}
		}
		*cf.dst(params.Content) = cf.value
	}
}
