package model

import (
	"fmt"
	"strings"
)

// Category classifies an extracted item for threshold purposes.
type Category string

// Item categories. Premium items carry collector value above melt and
// tolerate a higher price ceiling; Bullion is priced against melt alone.
const (
	CategoryPremium Category = "Premium"
	CategoryBullion Category = "Bullion"
)

// ParseCategory normalizes a category string from the extraction payload.
// Unknown or empty categories are rejected rather than defaulted.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "premium":
		return CategoryPremium, nil
	case "bullion":
		return CategoryBullion, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// CandidateItem is a single priced item extracted from a listing.
type CandidateItem struct {
	Name        string
	Category    Category
	ListedPrice float64 // Dollars; "each" when Quantity > 1, per lot when 1
	Quantity    int
	WeightOz    float64 // Troy ounces of silver per item, fully resolved
}

// Validate reports whether the item carries usable numbers. Items failing
// validation are skipped by the evaluator, never reported.
func (i CandidateItem) Validate() error {
	if i.ListedPrice <= 0 {
		return fmt.Errorf("item %q: listed price must be positive, got %v", i.Name, i.ListedPrice)
	}
	if i.WeightOz <= 0 {
		return fmt.Errorf("item %q: weight must be positive, got %v", i.Name, i.WeightOz)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("item %q: quantity must be positive, got %d", i.Name, i.Quantity)
	}
	if i.Category != CategoryPremium && i.Category != CategoryBullion {
		return fmt.Errorf("item %q: unknown category %q", i.Name, i.Category)
	}
	return nil
}

// ExtractionResult is the validated output of one inference call against a
// single listing.
type ExtractionResult struct {
	ShippingCost float64 // Charged once per listing, amortized across items
	Items        []CandidateItem
}
