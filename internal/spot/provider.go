// Package spot supplies the current reference silver price per troy ounce.
package spot

import (
	"context"
	"log/slog"
	"time"
)

// FallbackPrice is used until a live quote has ever succeeded.
const FallbackPrice = 58.50

// Quoter fetches the most recent close price for a ticker.
type Quoter interface {
	LatestClose(ctx context.Context, ticker string) (float64, error)
}

// Provider caches the spot price between refreshes. Lookup failures keep the
// previously held price; if no lookup ever succeeded the fixed fallback is
// returned instead. Current never fails its caller.
//
// Provider is owned by the single watch loop; it performs no locking.
type Provider struct {
	quoter      Quoter
	logger      *slog.Logger
	ticker      string
	refreshEach time.Duration
	price       float64
	lastRefresh time.Time
	now         func() time.Time
}

// NewProvider creates a spot price provider refreshing at most once per
// interval (default 15 minutes).
func NewProvider(quoter Quoter, ticker string, interval time.Duration, logger *slog.Logger) *Provider {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		quoter:      quoter,
		logger:      logger,
		ticker:      ticker,
		refreshEach: interval,
		price:       FallbackPrice,
		now:         time.Now,
	}
}

// Current returns the spot price, refreshing from the quoter when the cached
// value is older than the refresh interval.
func (p *Provider) Current(ctx context.Context) float64 {
	if p.lastRefresh.IsZero() || p.now().Sub(p.lastRefresh) >= p.refreshEach {
		p.refresh(ctx)
	}
	return p.price
}

func (p *Provider) refresh(ctx context.Context) {
	price, err := p.quoter.LatestClose(ctx, p.ticker)
	if err != nil {
		// Stale price on failure; the fallback constant only applies
		// before the first successful fetch.
		p.logger.Warn("spot price lookup failed, keeping previous value",
			"ticker", p.ticker,
			"price", p.price,
			"error", err)
		p.lastRefresh = p.now()
		return
	}

	p.price = price
	p.lastRefresh = p.now()
	p.logger.Info("spot price refreshed", "ticker", p.ticker, "price", price)
}
