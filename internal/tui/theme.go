package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))
	labelStyle = lipgloss.NewStyle().
			Width(7)
	focusStyle = labelStyle.
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f7768e"))
	channelColors = [3]string{"#f7768e", "#9ece6a", "#7aa2f7"}
)

// swatch renders a block filled with the given color
func swatch(r, g, b uint8) string {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Width(12).
		Height(3).
		Render(``)
}
