package spot

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meltwatch/meltwatch/internal/common"
)

const stooqBaseURL = "https://stooq.com"

// StooqQuoter fetches daily close prices from the Stooq CSV endpoint.
type StooqQuoter struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewStooqQuoter creates a quoter against the public Stooq endpoint.
func NewStooqQuoter(userAgent string) *StooqQuoter {
	return &StooqQuoter{
		baseURL:   stooqBaseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// LatestClose returns the most recent daily close for the ticker.
// An empty or header-only CSV yields common.ErrNoQuote.
func (q *StooqQuoter) LatestClose(ctx context.Context, ticker string) (float64, error) {
	url := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", q.baseURL, strings.ToLower(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if q.userAgent != "" {
		req.Header.Set("User-Agent", q.userAgent)
	}

	resp, err := q.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote endpoint returned status %d", resp.StatusCode)
	}

	return parseLatestClose(resp.Body, ticker)
}

// parseLatestClose reads a Date,Open,High,Low,Close[,Volume] CSV and returns
// the Close column of the last data row.
func parseLatestClose(r io.Reader, ticker string) (float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse quote CSV: %w", err)
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("%w for ticker %s", common.ErrNoQuote, ticker)
	}

	closeIdx := -1
	for i, col := range records[0] {
		if strings.EqualFold(strings.TrimSpace(col), "Close") {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		return 0, fmt.Errorf("%w: no Close column for ticker %s", common.ErrNoQuote, ticker)
	}

	last := records[len(records)-1]
	if closeIdx >= len(last) {
		return 0, fmt.Errorf("%w: short row for ticker %s", common.ErrNoQuote, ticker)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(last[closeIdx]), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse close price %q: %w", last[closeIdx], err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: non-positive close for ticker %s", common.ErrNoQuote, ticker)
	}

	return price, nil
}
