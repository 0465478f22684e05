package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/younsl/awsmods/internal/log"
)

// DefaultMaxAttempts is the number of attempts the SDK standard retryer makes
// per API call, matching the jittered backoff the modules used historically
const DefaultMaxAttempts = 5

// options holds optional overrides for AWS config loading
type options struct {
	profile     string
	region      string
	maxAttempts int
	imdsRegion  bool
}

// Option customizes how AWS config is loaded
type Option func(*options)

// WithProfile sets the shared config profile
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithMaxAttempts sets how many times the standard retryer tries each call.
// Values below 1 keep the default.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// WithIMDSRegion lets the SDK fall back to the instance metadata region when
// no other source provides one
func WithIMDSRegion(enabled bool) Option {
	return func(o *options) { o.imdsRegion = enabled }
}

// LoadAWSConfig loads the SDK config from the usual chain (env, shared config,
// instance role) and applies the overrides
func LoadAWSConfig(ctx context.Context, opts ...Option) (aws.Config, error) {
	o := options{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxAttempts < 1 {
		o.maxAttempts = DefaultMaxAttempts
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryer(newRetryer(o.maxAttempts)),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	} else if o.imdsRegion {
		loadOpts = append(loadOpts, config.WithEC2IMDSRegion())
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}

	log.WithFields(log.Fields{
		"profile":      o.profile,
		"region":       cfg.Region,
		"max_attempts": o.maxAttempts,
	}).Debug("aws config loaded")
	return cfg, nil
}

// newRetryer returns the standard SDK retryer capped at maxAttempts. Throttling
// and transient errors are retried with jittered exponential backoff.
func newRetryer(maxAttempts int) func() aws.Retryer {
	return func() aws.Retryer {
		return retry.AddWithMaxAttempts(retry.NewStandard(), maxAttempts)
	}
}
