// Package watch orchestrates the poll cycle: spot price, new listings,
// extraction, evaluation, notification.
package watch

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/meltwatch/meltwatch/internal/model"
)

// ListingSource supplies candidate listings. Fail-soft: an empty slice on
// upstream failure.
type ListingSource interface {
	Latest(ctx context.Context) []model.Listing
}

// SpotProvider supplies the current reference price per ounce. Never fails.
type SpotProvider interface {
	Current(ctx context.Context) float64
}

// Extractor converts listing text into candidate items.
type Extractor interface {
	Analyze(ctx context.Context, listing model.Listing, spot float64) (*model.ExtractionResult, error)
}

// Evaluator applies the deal-qualification arithmetic.
type Evaluator interface {
	Evaluate(listing model.Listing, result model.ExtractionResult, spot float64) []model.Deal
}

// Notifier emits qualifying deals and the session summary.
type Notifier interface {
	Deal(d model.Deal)
	Summary(found int)
}

// Config holds the loop timing and dedup knobs.
type Config struct {
	// PollMin/PollMax bound the randomized sleep between cycles. The
	// jitter avoids a fixed, detectable polling cadence upstream.
	PollMin       time.Duration
	PollMax       time.Duration
	RecoveryDelay time.Duration // Sleep after an unexpected cycle failure
	SeenCapacity  int
}

func (c *Config) applyDefaults() {
	if c.PollMin <= 0 {
		c.PollMin = 60 * time.Second
	}
	if c.PollMax < c.PollMin {
		c.PollMax = c.PollMin + 30*time.Second
	}
	if c.RecoveryDelay <= 0 {
		c.RecoveryDelay = 60 * time.Second
	}
}

// Watcher runs the single-threaded poll loop. It is the sole owner of the
// seen-set and the deal counter.
type Watcher struct {
	source    ListingSource
	spot      SpotProvider
	extractor Extractor
	evaluator Evaluator
	notifier  Notifier
	logger    *slog.Logger
	seen      *seenSet
	rng       *rand.Rand
	cfg       Config
	found     int
}

// New creates a watcher wiring the pipeline components together.
func New(source ListingSource, spot SpotProvider, extractor Extractor, evaluator Evaluator, notifier Notifier, cfg Config, logger *slog.Logger) *Watcher {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		source:    source,
		spot:      spot,
		extractor: extractor,
		evaluator: evaluator,
		notifier:  notifier,
		logger:    logger,
		seen:      newSeenSet(cfg.SeenCapacity),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg:       cfg,
	}
}

// Run polls until the context is canceled, then emits the session summary.
// Cycle failures never terminate the loop.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watch loop started",
		"poll_min", w.cfg.PollMin,
		"poll_max", w.cfg.PollMax)

	for {
		w.safeCycle(ctx)

		if err := w.sleep(ctx, w.pollInterval()); err != nil {
			break
		}
	}

	w.notifier.Summary(w.found)
	w.logger.Info("watch loop stopped", "deals_found", w.found)
	return nil
}

// RunOnce performs a single poll cycle and returns the number of deals found.
func (w *Watcher) RunOnce(ctx context.Context) int {
	spot := w.spot.Current(ctx)
	listings := w.source.Latest(ctx)

	found := 0
	for _, listing := range listings {
		if ctx.Err() != nil {
			return found
		}
		if w.seen.Contains(listing.Link) {
			continue
		}
		found += w.processListing(ctx, listing, spot)
	}

	w.logger.Debug("cycle complete",
		"listings", len(listings),
		"deals", found,
		"seen", w.seen.Len())
	return found
}

// processListing extracts, evaluates, and notifies for one listing. The
// listing is marked seen whether or not extraction succeeded, so it is never
// reprocessed this run.
func (w *Watcher) processListing(ctx context.Context, listing model.Listing, spot float64) int {
	w.logger.Info("analyzing listing", "title", listing.Title, "link", listing.Link)
	w.seen.Add(listing.Link)

	result, err := w.extractor.Analyze(ctx, listing, spot)
	if err != nil {
		w.logger.Error("extraction failed", "link", listing.Link, "error", err)
		return 0
	}

	deals := w.evaluator.Evaluate(listing, *result, spot)
	for _, deal := range deals {
		w.notifier.Deal(deal)
	}

	w.found += len(deals)
	return len(deals)
}

// safeCycle runs one cycle, converting a panic into a logged critical error
// plus a recovery pause. The loop is the durability mechanism; it must not
// crash-exit on transient faults.
func (w *Watcher) safeCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("cycle panicked, resuming after delay", "panic", r)
			_ = w.sleep(ctx, w.cfg.RecoveryDelay)
		}
	}()

	w.RunOnce(ctx)
}

func (w *Watcher) pollInterval() time.Duration {
	spread := w.cfg.PollMax - w.cfg.PollMin
	if spread <= 0 {
		return w.cfg.PollMin
	}
	return w.cfg.PollMin + time.Duration(w.rng.Int63n(int64(spread)+1))
}

func (w *Watcher) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
