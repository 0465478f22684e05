package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/pkg/aws"
	"github.com/younsl/awsmods/pkg/formatter"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	region      string
	profile     string
	logLevel    string
	output      string
	check       bool
	params      string
	maxAttempts int

	format formatter.Format
}

// commandError carries what a command already did when it failed
type commandError struct {
	err     error
	partial interface{}
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	opts := &globalOptions{format: formatter.FormatJSON}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var partial interface{}
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		partial = cmdErr.partial
	}
	if werr := formatter.WriteFailure(os.Stdout, opts.format, formatter.NewFailure(err, partial)); werr != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return 1
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "awsmods",
		Short: "Declarative management of Elastic IPs and Lambda layers",
		Long: `awsmods drives AWS resources towards a desired state and reports
whether anything changed, in the manner of configuration management modules.

Results are written to stdout, logs to stderr.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Init(opts.logLevel)

			format, err := formatter.ParseFormat(opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.region, "region", "", "AWS region (defaults to the SDK chain, then instance metadata)")
	flags.StringVar(&opts.profile, "profile", "", "Shared config profile")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $"+log.EnvLevel+" or warn)")
	flags.StringVarP(&opts.output, "output", "o", string(formatter.FormatJSON), "Output format: json, yaml or table")
	flags.BoolVar(&opts.check, "check", false, "Report what would change without changing anything")
	flags.StringVarP(&opts.params, "params", "p", "", "YAML file with module parameters; flags override its values")
	flags.IntVar(&opts.maxAttempts, "max-attempts", aws.DefaultMaxAttempts, "Maximum attempts per AWS API call")

	rootCmd.AddCommand(
		newEIPCmd(opts),
		newLayerCmd(opts),
		newLayerInfoCmd(opts),
		newVersionCmd(opts),
	)
	return rootCmd
}
