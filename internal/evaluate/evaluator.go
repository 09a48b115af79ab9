// Package evaluate applies the deal-qualification arithmetic to extracted
// items. It is pure: identical inputs always produce identical deals.
package evaluate

import (
	"time"

	"github.com/meltwatch/meltwatch/internal/model"
)

// Defaults for the threshold policy.
const (
	// DefaultPremiumAllowance is added to spot for Premium items, whose
	// collector value exceeds melt.
	DefaultPremiumAllowance = 10.0
	// DefaultSanityFloorRatio marks prices implausibly far below spot as
	// extraction faults rather than bargains.
	DefaultSanityFloorRatio = 0.5
)

// Evaluator holds the threshold policy knobs.
type Evaluator struct {
	PremiumAllowance float64
	SanityFloorRatio float64
	now              func() time.Time
}

// New creates an evaluator with the default policy.
func New() *Evaluator {
	return &Evaluator{
		PremiumAllowance: DefaultPremiumAllowance,
		SanityFloorRatio: DefaultSanityFloorRatio,
		now:              time.Now,
	}
}

// Evaluate computes the all-in price per ounce for every valid item and
// returns those below the category threshold. Shipping is charged once per
// listing and amortized across each item's total resolved ounces; items with
// missing or non-positive numbers are skipped, never reported.
func (e *Evaluator) Evaluate(listing model.Listing, result model.ExtractionResult, spot float64) []model.Deal {
	deals := make([]model.Deal, 0, len(result.Items))
	floor := spot * e.SanityFloorRatio

	for _, item := range result.Items {
		if item.Validate() != nil {
			continue
		}

		totalOz := item.WeightOz * float64(item.Quantity)
		allIn := (item.ListedPrice*float64(item.Quantity) + result.ShippingCost) / totalOz

		// An implausibly low price is an arithmetic or extraction fault,
		// not a bargain.
		if allIn < floor {
			continue
		}

		threshold := spot
		if item.Category == model.CategoryPremium {
			threshold = spot + e.PremiumAllowance
		}
		if allIn >= threshold {
			continue
		}

		deals = append(deals, model.Deal{
			FoundAt:      e.now(),
			Item:         item,
			ListingTitle: listing.Title,
			ListingLink:  listing.Link,
			PricePerOz:   allIn,
			Threshold:    threshold,
			SpotPrice:    spot,
		})
	}

	return deals
}
