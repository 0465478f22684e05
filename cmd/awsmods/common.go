package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/younsl/awsmods/internal/config"
	"github.com/younsl/awsmods/pkg/aws"
	"github.com/younsl/awsmods/pkg/formatter"
)

// loadParams fills params from the --params file and then from every flag
// set on the command line. flagValues holds the values bound to the flags.
func loadParams(cmd *cobra.Command, opts *globalOptions, params, flagValues interface{}) error {
	if opts.params != "" {
		if err := config.LoadFile(opts.params, params); err != nil {
			return err
		}
	}
	config.Overlay(params, flagValues, func(key string) bool {
		return cmd.Flags().Changed(config.FlagName(key))
	})
	return nil
}

// loadAWSConfig loads the SDK config for region, or for the --region flag
// when region is empty
func loadAWSConfig(ctx context.Context, opts *globalOptions, region string, imdsRegion bool) (awssdk.Config, error) {
	if region == "" {
		region = opts.region
	}
	return aws.LoadAWSConfig(ctx,
		aws.WithProfile(opts.profile),
		aws.WithRegion(region),
		aws.WithMaxAttempts(opts.maxAttempts),
		aws.WithIMDSRegion(imdsRegion),
	)
}

// startSpinner shows progress on stderr when it is a terminal. The returned
// stop function takes the final message.
func startSpinner(message string) func(final string) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return func(string) {}
	}

	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" %s ...", message)
	s.Start()
	return func(final string) {
		if final != "" {
			s.FinalMSG = final + "\n"
		}
		s.Stop()
	}
}

// writeResult renders a successful result on stdout
func writeResult(opts *globalOptions, v interface{}, table func(io.Writer) error) error {
	return formatter.Render(os.Stdout, opts.format, v, table)
}
