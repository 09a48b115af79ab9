// Package extract turns listing free text into validated candidate items via
// an inference call with a two-tier model fallback.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/meltwatch/meltwatch/internal/common"
	"github.com/meltwatch/meltwatch/internal/llm"
	"github.com/meltwatch/meltwatch/internal/model"
)

// Default model tiers. The primary is the higher-capability model; the
// fallback is cheaper and faster, used only on a capacity rejection.
const (
	DefaultPrimaryModel  = "llama-3.3-70b-versatile"
	DefaultFallbackModel = "llama-3.1-8b-instant"
)

// Extractor analyzes listings through an ordered list of model tiers.
type Extractor struct {
	client llm.Client
	logger *slog.Logger
	tiers  []string
}

// New creates an extractor. Tiers are tried in order; a tier is only
// consulted after the previous one was rejected for capacity.
func New(client llm.Client, tiers []string, logger *slog.Logger) *Extractor {
	if len(tiers) == 0 {
		tiers = []string{DefaultPrimaryModel, DefaultFallbackModel}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: client,
		tiers:  tiers,
		logger: logger,
	}
}

// Analyze extracts candidate items from a listing. On a rate-limit rejection
// from a tier it moves to the next tier with the identical instruction; any
// other error short-circuits. Malformed payloads are extraction failures,
// not fallback triggers.
func (e *Extractor) Analyze(ctx context.Context, listing model.Listing, spot float64) (*model.ExtractionResult, error) {
	prompt := BuildPrompt(listing.Title, listing.Body, spot)

	var lastErr error
	for i, tier := range e.tiers {
		content, err := e.client.Complete(ctx, tier, prompt)
		if err != nil {
			lastErr = err
			if common.IsRetryable(err) && i < len(e.tiers)-1 {
				e.logger.Warn("inference tier rejected for capacity, falling back",
					"model", tier,
					"fallback", e.tiers[i+1],
					"listing", listing.Link)
				continue
			}
			return nil, fmt.Errorf("inference failed on model %s: %w", tier, err)
		}

		result, parseErr := parsePayload(content, e.logger)
		if parseErr != nil {
			return nil, fmt.Errorf("model %s: %w", tier, parseErr)
		}
		return result, nil
	}

	return nil, fmt.Errorf("all inference tiers exhausted: %w", lastErr)
}

// parsePayload validates the raw model output and coerces it into the domain
// types. Items with missing or non-numeric fields are dropped here so
// nothing unvalidated reaches the evaluator.
func parsePayload(content string, logger *slog.Logger) (*model.ExtractionResult, error) {
	var raw struct {
		ShippingCost flexNumber `json:"shipping_cost"`
		Items        []struct {
			Name        string     `json:"name"`
			Category    string     `json:"category"`
			ListedPrice flexNumber `json:"listed_price"`
			Quantity    flexNumber `json:"quantity_available"`
			WeightOz    flexNumber `json:"weight_oz"`
		} `json:"items"`
	}

	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}

	shipping := raw.ShippingCost.value
	if shipping < 0 {
		shipping = 0
	}

	result := &model.ExtractionResult{
		ShippingCost: shipping,
		Items:        make([]model.CandidateItem, 0, len(raw.Items)),
	}

	for _, it := range raw.Items {
		category, err := model.ParseCategory(it.Category)
		if err != nil {
			logger.Debug("dropping extracted item", "name", it.Name, "reason", err)
			continue
		}

		quantity := int(it.Quantity.value)
		if !it.Quantity.set {
			quantity = 1
		}

		item := model.CandidateItem{
			Name:        strings.TrimSpace(it.Name),
			Category:    category,
			ListedPrice: it.ListedPrice.value,
			Quantity:    quantity,
			WeightOz:    it.WeightOz.value,
		}
		if err := item.Validate(); err != nil {
			logger.Debug("dropping extracted item", "name", it.Name, "reason", err)
			continue
		}

		result.Items = append(result.Items, item)
	}

	return result, nil
}

// flexNumber coerces a JSON number or numeric string. Models occasionally
// quote numbers despite the schema.
type flexNumber struct {
	value float64
	set   bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Non-numeric field; leave unset so validation drops the item.
		return nil
	}

	f.value = v
	f.set = true
	return nil
}
