package notify

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meltwatch/meltwatch/internal/model"
)

func testDeal() model.Deal {
	return model.Deal{
		FoundAt: time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
		Item: model.CandidateItem{
			Name:        "40% Kennedy half",
			Category:    model.CategoryBullion,
			ListedPrice: 7.75,
			Quantity:    7,
			WeightOz:    0.1479,
		},
		ListingTitle: "[WTS] Silver below melt!",
		ListingLink:  "https://example.com/post/1",
		PricePerOz:   59.16,
		Threshold:    68.50,
		SpotPrice:    58.50,
	}
}

func TestDealOutput(t *testing.T) {
	var out bytes.Buffer
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	n := NewWithOutput(&out, logger)
	n.Deal(testDeal())

	line := out.String()
	assert.Contains(t, line, "40% Kennedy half")
	assert.Contains(t, line, "Bullion")
	assert.Contains(t, line, "x7")
	assert.Contains(t, line, "$59.16/oz")
	assert.Contains(t, line, "https://example.com/post/1")

	// The durable log record carries the full arithmetic.
	logLine := logBuf.String()
	assert.Contains(t, logLine, "deal found")
	assert.Contains(t, logLine, "price_per_oz=59.16")
	assert.Contains(t, logLine, "threshold=68.50")
	assert.Contains(t, logLine, "spot=58.50")
}

func TestSummaryOutput(t *testing.T) {
	var out bytes.Buffer
	n := NewWithOutput(&out, slog.New(slog.NewTextHandler(io.Discard, nil)))

	n.Summary(3)
	assert.True(t, strings.Contains(out.String(), "3 deal(s) found"))
}
