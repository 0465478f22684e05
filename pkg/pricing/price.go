package pricing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// priceListEntry is the part of a Pricing API product document we read
type priceListEntry struct {
	Product struct {
		Attributes map[string]string `json:"attributes"`
	} `json:"product"`
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]struct {
				Unit         string            `json:"unit"`
				PricePerUnit map[string]string `json:"pricePerUnit"`
			} `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

// ExtractOnDemandPrice returns the usage type and the USD on-demand price of
// a price list entry
func ExtractOnDemandPrice(priceJSON string) (string, float64, error) {
	var entry priceListEntry
	if err := json.Unmarshal([]byte(priceJSON), &entry); err != nil {
		return "", 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	usageType := entry.Product.Attributes["usagetype"]
	for _, offer := range entry.Terms.OnDemand {
		for _, dimension := range offer.PriceDimensions {
			usd, ok := dimension.PricePerUnit["USD"]
			if !ok {
				continue
			}
			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return "", 0, fmt.Errorf("error parsing price: %w", err)
			}
			return usageType, price, nil
		}
	}
	return "", 0, fmt.Errorf("USD on-demand price not found")
}

// isIdleAddressUsage matches usage types such as "USE1-PublicIPv4:IdleAddress"
func isIdleAddressUsage(usageType string) bool {
	return strings.HasSuffix(usageType, "PublicIPv4:IdleAddress")
}
