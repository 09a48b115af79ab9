package model

import "time"

// Deal is a candidate item that cleared the category threshold, annotated
// with the arithmetic that qualified it. Deals live only for the cycle that
// produced them; the durable log is their only record.
type Deal struct {
	FoundAt      time.Time
	Item         CandidateItem
	ListingTitle string
	ListingLink  string
	PricePerOz   float64 // All-in: (price*qty + amortized shipping) / total oz
	Threshold    float64
	SpotPrice    float64
}
