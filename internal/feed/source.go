// Package feed fetches candidate sell listings from the classifieds RSS feed.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/meltwatch/meltwatch/internal/model"
)

// DefaultUserAgent mimics a desktop browser; the upstream feed rejects
// obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Config holds feed source settings.
type Config struct {
	URL             string
	Limit           int // Newest N entries per poll
	UserAgent       string
	IncludeBuyPosts bool // Keep [WTB]/[WTT] posts instead of filtering them
}

// Source fetches the newest feed entries and converts them into listings.
// All failures are fail-soft: a fetch or parse error logs and yields an
// empty slice, never an error to the caller.
type Source struct {
	httpClient *http.Client
	logger     *slog.Logger
	cfg        Config
}

// NewSource creates a listing source for the configured feed.
func NewSource(cfg Config, logger *slog.Logger) *Source {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Latest returns the newest entries as listings, newest first. Bodies are
// plain text with struck-through (withdrawn/sold) content removed. Posts
// whose titles mark them as buy or trade offers are skipped unless
// configured otherwise.
func (s *Source) Latest(ctx context.Context) []model.Listing {
	body, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("feed fetch failed", "url", s.cfg.URL, "error", err)
		return nil
	}

	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		s.logger.Error("feed parse failed", "url", s.cfg.URL, "error", err)
		return nil
	}

	listings := make([]model.Listing, 0, s.cfg.Limit)
	for _, entry := range parsed.Items {
		if len(listings) >= s.cfg.Limit {
			break
		}
		if entry.Link == "" {
			continue
		}
		if !s.cfg.IncludeBuyPosts && isBuyPost(entry.Title) {
			s.logger.Debug("skipping non-sell post", "title", entry.Title)
			continue
		}

		text := entryText(entry)
		listings = append(listings, model.Listing{
			Link:  entry.Link,
			Title: entry.Title,
			Body:  CleanBody(text),
		})
	}

	return listings
}

func (s *Source) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("feed request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read feed body: %w", err)
	}

	return string(data), nil
}

// entryText prefers the full content block over the summary.
func entryText(entry *gofeed.Item) string {
	if entry.Content != "" {
		return entry.Content
	}
	return entry.Description
}

// buyMarkers identify posts that are not sell offers.
var buyMarkers = []string{"[wtb]", "[wtt]", "want to buy", "want to trade"}

func isBuyPost(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range buyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
