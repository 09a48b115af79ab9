package notify

import "github.com/charmbracelet/lipgloss"

var (
	// dealStyle highlights a qualifying deal line.
	dealStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")) // Teal

	// priceStyle emphasizes the computed price per ounce.
	priceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFE66D")) // Yellow

	// subtleStyle formats the listing link and category tag.
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")) // Gray
)
