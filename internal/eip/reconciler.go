package eip

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/younsl/awsmods/internal/log"
	"github.com/younsl/awsmods/internal/models"
)

// Reconciler drives an Elastic IP towards a desired state. It holds no state
// between calls; every call re-reads the current state from the API.
type Reconciler struct {
	api  CloudAPI
	tags TagReconciler
}

// NewReconciler returns a Reconciler. tags may be nil, in which case tags are
// never reconciled.
func NewReconciler(api CloudAPI, tags TagReconciler) *Reconciler {
	return &Reconciler{api: api, tags: tags}
}

// run bundles the components of a single reconciliation, all sharing the
// dry-run setting of the request.
type run struct {
	entry      *log.Entry
	desired    DesiredState
	locator    *Locator
	allocator  *Allocator
	associator *Associator
}

// Reconcile applies desired and reports what changed. Invalid requests fail
// with an *InvalidCombinationError before any API call. On a failure after a
// mutation the partial result is returned along with the error.
func (r *Reconciler) Reconcile(ctx context.Context, desired DesiredState) (*Result, error) {
	if err := desired.Validate(); err != nil {
		return nil, err
	}

	fields := log.Fields{
		"run_id":  uuid.NewString(),
		"state":   desired.State,
		"domain":  desired.domain(),
		"dry_run": desired.DryRun,
	}
	if desired.Device != nil {
		fields["device"] = desired.Device.ID()
	}
	if desired.PublicIP != "" {
		fields["public_ip"] = desired.PublicIP
	}

	ru := &run{
		entry:      log.WithFields(fields),
		desired:    desired,
		locator:    NewLocator(r.api),
		allocator:  NewAllocator(r.api, desired.DryRun),
		associator: NewAssociator(r.api, desired.DryRun),
	}
	ru.entry.Debug("reconciling address")

	address, err := ru.locator.Locate(ctx, desired.PublicIP, desired.Device)
	if err != nil {
		return nil, err
	}

	var result *Result
	if desired.State == StateAbsent {
		result, err = ru.absent(ctx, address)
	} else {
		result, err = r.present(ctx, ru, address)
	}
	if err != nil {
		ru.entry.WithError(err).Error("reconciliation failed")
		return result, err
	}

	ru.entry.WithField("changed", result.Changed).Info("reconciled address")
	return result, nil
}

func (r *Reconciler) present(ctx context.Context, ru *run, address *models.Address) (*Result, error) {
	desired := ru.desired
	changed := false

	if desired.Device != nil {
		if err := ru.checkDevice(ctx); err != nil {
			return nil, err
		}
	}

	if address == nil {
		var err error
		address, changed, err = ru.allocator.Allocate(ctx, AllocateParams{
			Domain:         desired.domain(),
			ReuseExisting:  desired.ReuseExisting,
			TagFilter:      desired.TagFilter,
			PublicIPv4Pool: desired.PublicIPv4Pool,
			Tags:           desired.Tags,
		})
		if err != nil {
			return nil, err
		}
		if address == nil {
			// Dry run with nothing to reuse: there is no address to
			// associate or tag yet.
			return &Result{Changed: changed}, nil
		}
	}

	result := &Result{
		Changed:      changed,
		PublicIP:     address.PublicIP,
		AllocationID: address.AllocationID,
	}

	if desired.Device != nil {
		associated, err := ru.associator.Associate(ctx, *address, desired.Device, desired.AllowReassociation, desired.PrivateIPAddress)
		if err != nil {
			return result, err
		}
		result.Changed = result.Changed || associated
	}

	if r.tags != nil && address.AllocationID != "" {
		tagged, err := r.tags.EnsureTags(ctx, address.AllocationID, ResourceType, desired.Tags, desired.PurgeTags, desired.DryRun)
		if err != nil {
			return result, fmt.Errorf("couldn't update tags on Elastic IP %s: %w", address.AllocationID, err)
		}
		result.Changed = result.Changed || tagged
	}

	return result, nil
}

// checkDevice looks the device up. A device that does not exist is left for
// the association call to reject. Reusing an address for an instance that
// lives in a VPC requires the vpc domain.
func (ru *run) checkDevice(ctx context.Context) error {
	info, err := ru.desired.Device.lookup(ctx, ru.locator.api)
	if err != nil {
		return err
	}
	if info == nil {
		ru.entry.Warn("device not found")
		return nil
	}

	if _, ok := ru.desired.Device.(Instance); ok &&
		ru.desired.ReuseExisting && info.VpcID != "" && ru.desired.domain() != models.DomainVPC {
		return &InvalidCombinationError{Reason: "You must set 'in_vpc' to true to associate an instance with an existing ip in a vpc"}
	}
	return nil
}

// absent never releases an address it did not first see detached from the
// requested device, unless no device was given at all.
func (ru *run) absent(ctx context.Context, address *models.Address) (*Result, error) {
	if address == nil {
		return absentResult(false, false), nil
	}

	device := ru.desired.Device
	if device == nil {
		released, err := ru.allocator.Release(ctx, *address)
		if err != nil {
			return nil, err
		}
		return absentResult(false, released), nil
	}

	disassociated, err := ru.associator.Disassociate(ctx, *address, device)
	if err != nil {
		return nil, err
	}
	if !disassociated || !ru.desired.ReleaseOnDisassociation {
		return absentResult(disassociated, false), nil
	}

	released, err := ru.allocator.Release(ctx, *address)
	if err != nil {
		return absentResult(true, false), err
	}
	return absentResult(true, released), nil
}
