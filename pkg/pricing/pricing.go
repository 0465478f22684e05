// Package pricing looks up the price of idle public IPv4 addresses through
// the AWS Pricing API, with a fixed fallback when the API is unavailable.
package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"

	"github.com/younsl/awsmods/internal/log"
)

// The Pricing API is only available in us-east-1 and ap-south-1
const pricingRegion = "us-east-1"

// HoursPerMonth is the billing month used to turn hourly prices into
// monthly ones
const HoursPerMonth = 720

// DefaultIPv4HourlyPrice is the public IPv4 charge used when the API can't
// be reached
const DefaultIPv4HourlyPrice = 0.005

// Source tells where a price came from
type Source string

// Price sources
const (
	SourceAPI     Source = "API"
	SourceCache   Source = "Cache"
	SourceDefault Source = "Default"
)

// API is the subset of the Pricing client used here
type API interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Stats counts lookups per outcome
type Stats struct {
	Success int
	Failure int
	Cache   int
}

// Client caches hourly prices per region
type Client struct {
	api     API
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]float64
	stats Stats
}

// NewClient returns a Client for cfg, pinned to the Pricing API region
func NewClient(cfg aws.Config) *Client {
	cfg = cfg.Copy()
	cfg.Region = pricingRegion
	return NewClientWithAPI(pricing.NewFromConfig(cfg))
}

// NewClientWithAPI wraps an existing API implementation
func NewClientWithAPI(api API) *Client {
	return &Client{
		api:     api,
		timeout: 5 * time.Second,
		cache:   make(map[string]float64),
	}
}

// IPv4MonthlyPrice returns the monthly price of an idle public IPv4 address
// in region. It never fails: lookup errors fall back to the default price.
func (c *Client) IPv4MonthlyPrice(ctx context.Context, region string) (float64, Source) {
	hourly, source := c.ipv4HourlyPrice(ctx, region)
	return hourly * HoursPerMonth, source
}

func (c *Client) ipv4HourlyPrice(ctx context.Context, region string) (float64, Source) {
	c.mu.Lock()
	if price, ok := c.cache[region]; ok {
		c.stats.Cache++
		c.mu.Unlock()
		return price, SourceCache
	}
	c.mu.Unlock()

	price, err := c.fetchIPv4HourlyPrice(ctx, region)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.stats.Failure++
		log.WithError(err).WithField("region", region).Warn("using default public IPv4 price")
		return DefaultIPv4HourlyPrice, SourceDefault
	}
	c.stats.Success++
	c.cache[region] = price
	return price, SourceAPI
}

// Stats returns a copy of the lookup counters
func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Client) fetchIPv4HourlyPrice(ctx context.Context, region string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	input := &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonVPC"),
		Filters: []types.Filter{
			{
				Type:  types.FilterTypeTermMatch,
				Field: aws.String("regionCode"),
				Value: aws.String(region),
			},
			{
				Type:  types.FilterTypeTermMatch,
				Field: aws.String("group"),
				Value: aws.String("VPCPublicIPv4Address"),
			},
		},
		MaxResults: aws.Int32(100),
	}

	resp, err := c.api.GetProducts(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	for _, product := range resp.PriceList {
		usageType, price, err := ExtractOnDemandPrice(product)
		if err != nil {
			log.WithError(err).Debug("skipping price list entry")
			continue
		}
		if isIdleAddressUsage(usageType) {
			return price, nil
		}
	}
	return 0, fmt.Errorf("no idle public IPv4 price found in region %s", region)
}
