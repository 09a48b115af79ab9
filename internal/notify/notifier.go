// Package notify emits qualifying deals to the console and the durable log.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meltwatch/meltwatch/internal/model"
)

// Notifier writes human-readable deal lines to an interactive stream and
// structured records to the durable log. Delivery is best-effort.
type Notifier struct {
	out    io.Writer
	logger *slog.Logger
}

// New creates a notifier writing to stdout and the default logger.
func New() *Notifier {
	return &Notifier{out: os.Stdout, logger: slog.Default()}
}

// NewWithOutput creates a notifier with explicit sinks, for tests.
func NewWithOutput(out io.Writer, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{out: out, logger: logger}
}

// Deal reports one qualifying deal.
func (n *Notifier) Deal(d model.Deal) {
	line := fmt.Sprintf("%s %s %s x%d %s %s",
		dealStyle.Render("DEAL"),
		d.Item.Name,
		subtleStyle.Render("["+string(d.Item.Category)+"]"),
		d.Item.Quantity,
		priceStyle.Render(fmt.Sprintf("$%.2f/oz", d.PricePerOz)),
		subtleStyle.Render(d.ListingLink))
	fmt.Fprintln(n.out, line)

	n.logger.Info("deal found",
		"item", d.Item.Name,
		"category", string(d.Item.Category),
		"quantity", d.Item.Quantity,
		"price_per_oz", fmt.Sprintf("%.2f", d.PricePerOz),
		"threshold", fmt.Sprintf("%.2f", d.Threshold),
		"spot", fmt.Sprintf("%.2f", d.SpotPrice),
		"listing", d.ListingLink)
}

// Summary reports the session total on shutdown.
func (n *Notifier) Summary(found int) {
	fmt.Fprintf(n.out, "Session complete: %d deal(s) found.\n", found)
	n.logger.Info("session summary", "deals_found", found)
}
