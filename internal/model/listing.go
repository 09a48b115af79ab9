// Package model defines the core domain types shared across the application.
package model

// Listing represents a single sell post pulled from the classifieds feed.
// It is immutable once fetched; only its link survives processing, as the
// key recorded in the seen-set.
type Listing struct {
	Link  string // Unique identifier for dedup
	Title string
	Body  string // Plain text, struck-through content already removed
}
