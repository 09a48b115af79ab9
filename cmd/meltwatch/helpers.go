package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/meltwatch/meltwatch/internal/common"
	"github.com/meltwatch/meltwatch/internal/evaluate"
	"github.com/meltwatch/meltwatch/internal/extract"
	"github.com/meltwatch/meltwatch/internal/feed"
	"github.com/meltwatch/meltwatch/internal/llm"
	"github.com/meltwatch/meltwatch/internal/notify"
	"github.com/meltwatch/meltwatch/internal/spot"
	"github.com/meltwatch/meltwatch/internal/watch"
)

// buildSpotProvider wires the Stooq quoter behind the caching provider.
func buildSpotProvider() *spot.Provider {
	quoter := spot.NewStooqQuoter(feed.DefaultUserAgent)
	return spot.NewProvider(
		quoter,
		viper.GetString("spot.ticker"),
		viper.GetDuration("spot.refresh_interval"),
		slog.Default(),
	)
}

// buildExtractor creates the inference client and the two-tier extractor.
// A missing API key is a fatal startup condition.
func buildExtractor() (*extract.Extractor, error) {
	apiKey := viper.GetString("groq.api_key")
	if apiKey == "" {
		return nil, common.NewUserError(
			"Groq API key is required: set MELTWATCH_GROQ_API_KEY or groq.api_key in the config file",
			common.ErrMissingConfig)
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:  apiKey,
		BaseURL: viper.GetString("groq.base_url"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}

	tiers := []string{
		viper.GetString("groq.primary_model"),
		viper.GetString("groq.fallback_model"),
	}
	if tiers[0] == "" {
		tiers[0] = extract.DefaultPrimaryModel
	}
	if tiers[1] == "" {
		tiers[1] = extract.DefaultFallbackModel
	}

	return extract.New(client, tiers, slog.Default()), nil
}

// buildWatcher assembles the full pipeline.
func buildWatcher() (*watch.Watcher, error) {
	extractor, err := buildExtractor()
	if err != nil {
		return nil, err
	}

	source := feed.NewSource(feed.Config{
		URL:             viper.GetString("feed.url"),
		Limit:           viper.GetInt("feed.limit"),
		IncludeBuyPosts: viper.GetBool("feed.include_buy_posts"),
	}, slog.Default())

	evaluator := evaluate.New()
	evaluator.PremiumAllowance = viper.GetFloat64("deals.premium_allowance")
	evaluator.SanityFloorRatio = viper.GetFloat64("deals.sanity_floor_ratio")

	cfg := watch.Config{
		PollMin:       viper.GetDuration("poll.min"),
		PollMax:       viper.GetDuration("poll.max"),
		RecoveryDelay: viper.GetDuration("poll.recovery_delay"),
		SeenCapacity:  viper.GetInt("seen.capacity"),
	}

	return watch.New(source, buildSpotProvider(), extractor, evaluator, notify.New(), cfg, slog.Default()), nil
}
