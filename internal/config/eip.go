package config

import (
	"errors"
	"fmt"

	"github.com/younsl/awsmods/internal/eip"
	"github.com/younsl/awsmods/internal/models"
)

// SelfDevice as device_id means the instance the command runs on.
const SelfDevice = "self"

// EIPParams are the parameters of the eip command.
type EIPParams struct {
	DeviceID                string            `yaml:"device_id"`
	PublicIP                string            `yaml:"public_ip"`
	IP                      string            `yaml:"ip"`
	State                   string            `yaml:"state"`
	InVPC                   bool              `yaml:"in_vpc"`
	ReuseExistingIPAllowed  bool              `yaml:"reuse_existing_ip_allowed"`
	ReleaseOnDisassociation bool              `yaml:"release_on_disassociation"`
	AllowReassociation      bool              `yaml:"allow_reassociation"`
	PrivateIPAddress        string            `yaml:"private_ip_address"`
	Tags                    map[string]string `yaml:"tags"`
	ResourceTags            map[string]string `yaml:"resource_tags"`
	PurgeTags               bool              `yaml:"purge_tags"`
	TagName                 string            `yaml:"tag_name"`
	TagValue                string            `yaml:"tag_value"`
	PublicIPv4Pool          string            `yaml:"public_ipv4_pool"`
}

// DefaultEIPParams returns the parameters used when nothing is given.
func DefaultEIPParams() EIPParams {
	return EIPParams{
		State:     eip.StatePresent,
		PurgeTags: true,
	}
}

// Normalize folds aliases into their canonical keys.
func (p *EIPParams) Normalize() error {
	if err := mergeAlias(&p.PublicIP, &p.IP, "public_ip", "ip"); err != nil {
		return err
	}
	if p.ResourceTags != nil {
		if p.Tags != nil {
			return errors.New("parameters are mutually exclusive: tags|resource_tags")
		}
		p.Tags, p.ResourceTags = p.ResourceTags, nil
	}
	if p.State == "" {
		p.State = eip.StatePresent
	}
	return nil
}

// Domain returns the allocation domain selected by in_vpc.
func (p EIPParams) Domain() string {
	if p.InVPC {
		return models.DomainVPC
	}
	return models.DomainStandard
}

// DesiredState converts the parameters. device_id must already be resolved
// when it was "self".
func (p EIPParams) DesiredState(dryRun bool) (eip.DesiredState, error) {
	if err := p.Normalize(); err != nil {
		return eip.DesiredState{}, err
	}
	if p.DeviceID == SelfDevice {
		return eip.DesiredState{}, fmt.Errorf("device_id %q must be resolved before use", SelfDevice)
	}

	domain := p.Domain()
	device, err := eip.ParseDevice(p.DeviceID, domain)
	if err != nil {
		return eip.DesiredState{}, err
	}
	filter, err := eip.NewTagFilter(p.TagName, p.TagValue)
	if err != nil {
		return eip.DesiredState{}, err
	}

	desired := eip.DesiredState{
		State:                   p.State,
		Device:                  device,
		PublicIP:                p.PublicIP,
		Domain:                  domain,
		ReuseExisting:           p.ReuseExistingIPAllowed,
		TagFilter:               filter,
		PublicIPv4Pool:          p.PublicIPv4Pool,
		AllowReassociation:      p.AllowReassociation,
		ReleaseOnDisassociation: p.ReleaseOnDisassociation,
		PrivateIPAddress:        p.PrivateIPAddress,
		Tags:                    p.Tags,
		PurgeTags:               p.PurgeTags,
		DryRun:                  dryRun,
	}
	if err := desired.Validate(); err != nil {
		return eip.DesiredState{}, err
	}
	return desired, nil
}
