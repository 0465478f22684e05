package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/younsl/awsmods/internal/config"
	"github.com/younsl/awsmods/internal/eip"
	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
	"github.com/younsl/awsmods/pkg/aws"
	"github.com/younsl/awsmods/pkg/formatter"
	"github.com/younsl/awsmods/pkg/pricing"
	"github.com/younsl/awsmods/pkg/utils"
)

func newEIPCmd(opts *globalOptions) *cobra.Command {
	flagValues := config.DefaultEIPParams()

	cmd := &cobra.Command{
		Use:   "eip",
		Short: "Allocate, associate, disassociate or release an Elastic IP",
		Example: `  # Make sure an instance has an Elastic IP in a VPC
  awsmods eip --device-id i-1212f003 --in-vpc

  # Release the address attached to a network interface
  awsmods eip --state absent --in-vpc --device-id eni-c8ad70f3 --release-on-disassociation

  # Attach an address to the instance running this command
  awsmods eip --device-id self --in-vpc --reuse-existing-ip-allowed --tag-name pool`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := config.DefaultEIPParams()
			if err := loadParams(cmd, opts, &params, &flagValues); err != nil {
				return err
			}
			return runEIP(cmd, opts, params)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flagValues.DeviceID, "device-id", "", `Instance ("i-") or network interface ("eni-") id; "self" for this instance`)
	f.StringVar(&flagValues.PublicIP, "public-ip", "", "The Elastic IP address")
	f.StringVar(&flagValues.State, "state", eip.StatePresent, "present or absent")
	f.BoolVar(&flagValues.InVPC, "in-vpc", false, "Allocate and look up addresses in the vpc domain")
	f.BoolVar(&flagValues.ReuseExistingIPAllowed, "reuse-existing-ip-allowed", false, "Reuse an unassociated address instead of allocating")
	f.BoolVar(&flagValues.ReleaseOnDisassociation, "release-on-disassociation", false, "Release the address once it is disassociated")
	f.BoolVar(&flagValues.AllowReassociation, "allow-reassociation", false, "Move the address even if it is associated elsewhere")
	f.StringVar(&flagValues.PrivateIPAddress, "private-ip-address", "", "Private address to associate with (requires --device-id)")
	f.StringToStringVar(&flagValues.Tags, "tags", nil, "Tags of the allocation, key=value")
	f.BoolVar(&flagValues.PurgeTags, "purge-tags", true, "Remove tags not listed in --tags")
	f.StringVar(&flagValues.TagName, "tag-name", "", "Only reuse addresses carrying this tag key")
	f.StringVar(&flagValues.TagValue, "tag-value", "", "Only reuse addresses whose --tag-name tag has this value")
	f.StringVar(&flagValues.PublicIPv4Pool, "public-ipv4-pool", "", "BYOIP pool to allocate from")

	cmd.AddCommand(newEIPListCmd(opts))
	return cmd
}

func runEIP(cmd *cobra.Command, opts *globalOptions, params config.EIPParams) error {
	ctx := cmd.Context()

	self := params.DeviceID == config.SelfDevice
	if self {
		identity, err := aws.GetInstanceIdentity(ctx, aws.NewIMDSClient())
		if err != nil {
			return fmt.Errorf("couldn't resolve device_id %q: %w", config.SelfDevice, err)
		}
		params.DeviceID = identity.InstanceID
		log.WithField("instance_id", identity.InstanceID).Debug("resolved device from instance metadata")
	}

	desired, err := params.DesiredState(opts.check)
	if err != nil {
		return err
	}

	cfg, err := loadAWSConfig(ctx, opts, "", self)
	if err != nil {
		return err
	}
	client := aws.NewEC2Client(cfg)

	stop := startSpinner("Reconciling Elastic IP")
	result, err := eip.NewReconciler(client, client).Reconcile(ctx, desired)
	stop("")
	if err != nil {
		if result != nil {
			return &commandError{err: err, partial: result}
		}
		return err
	}

	return writeResult(opts, result, func(w io.Writer) error {
		return formatter.WriteEIPResult(w, result)
	})
}

func newEIPListCmd(opts *globalOptions) *cobra.Command {
	var (
		regions        []string
		unattachedOnly bool
		livePricing    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Elastic IPs across regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEIPList(cmd, opts, regions, unattachedOnly, livePricing)
		},
	}

	cmd.Flags().StringSliceVarP(&regions, "regions", "r", nil, "Regions to scan (default: --region or the SDK default)")
	cmd.Flags().BoolVar(&unattachedOnly, "unattached", false, "Only list addresses not associated with anything")
	cmd.Flags().BoolVar(&livePricing, "live-pricing", false, "Price unattached addresses with the AWS Pricing API")
	return cmd
}

func runEIPList(cmd *cobra.Command, opts *globalOptions, regions []string, unattachedOnly, livePricing bool) error {
	ctx := cmd.Context()

	if len(regions) == 0 {
		if opts.region != "" {
			regions = []string{opts.region}
		} else {
			cfg, err := loadAWSConfig(ctx, opts, "", false)
			if err != nil {
				return err
			}
			region := cfg.Region
			if region == "" {
				region = utils.GetDefaultRegion()
			}
			regions = []string{region}
		}
	}
	for _, region := range regions {
		if !utils.IsKnownRegion(region) {
			log.WithField("region", region).Warn("unknown region")
		}
	}

	scanStartTime := time.Now()
	stop := startSpinner("Scanning Elastic IPs")

	// Results per region, filled in parallel
	results := make([]struct {
		eips []models.EIPInfo
		err  error
	}, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(idx int, r string) {
			defer wg.Done()

			cfg, err := loadAWSConfig(ctx, opts, r, false)
			if err != nil {
				results[idx].err = err
				return
			}
			results[idx].eips, results[idx].err = aws.NewEC2Client(cfg).ListAddresses(ctx, unattachedOnly)
		}(i, region)
	}
	wg.Wait()

	scanDuration := time.Since(scanStartTime)

	eips := []models.EIPInfo{}
	failed := 0
	for i, result := range results {
		if result.err != nil {
			failed++
			log.WithError(result.err).WithField("region", regions[i]).Error("couldn't list Elastic IPs")
			continue
		}
		eips = append(eips, result.eips...)
	}

	if livePricing {
		if err := priceUnattached(ctx, opts, eips); err != nil {
			log.WithError(err).Warn("couldn't load pricing config, keeping default prices")
		}
	}

	stop(fmt.Sprintf("✓ [%d EIPs found] Elastic IP resources analyzed - Completed in %.2f seconds",
		len(eips), scanDuration.Seconds()))

	if failed == len(regions) {
		return results[0].err
	}

	return writeResult(opts, eips, func(w io.Writer) error {
		if err := formatter.WriteEIPsTable(w, eips, scanStartTime, scanDuration); err != nil {
			return err
		}
		return formatter.WriteEIPsSummary(w, eips)
	})
}

// priceUnattached replaces the default monthly cost of unattached addresses
// with the regional price from the Pricing API
func priceUnattached(ctx context.Context, opts *globalOptions, eips []models.EIPInfo) error {
	cfg, err := loadAWSConfig(ctx, opts, "", false)
	if err != nil {
		return err
	}
	client := pricing.NewClient(cfg)

	for i := range eips {
		if eips[i].AssociationState != "Unattached" {
			continue
		}
		eips[i].EstimatedMonthlyCost, _ = client.IPv4MonthlyPrice(ctx, eips[i].Region)
	}

	stats := client.Stats()
	log.WithFields(log.Fields{
		"success": stats.Success,
		"failure": stats.Failure,
		"cache":   stats.Cache,
	}).Debug("pricing lookups")
	return nil
}
