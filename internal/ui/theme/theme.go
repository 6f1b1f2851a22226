package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#FACC15")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// HeatColors is indexed by insights.Heat bucket, coolest first.
var HeatColors = [5]color.Color{
	lipgloss.Color("#15803D"), // mastered
	lipgloss.Color("#22C55E"), // improving
	lipgloss.Color("#334155"), // untouched
	lipgloss.Color("#F59E0B"), // struggling
	lipgloss.Color("#E11D48"), // hot
}

// SparkColors cycle through firework bursts.
var SparkColors = []color.Color{Primary, Secondary, Accent, Success, Warning, Error}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Boxes
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	FocusedField = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(Primary)

	BlurredField = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(Border)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Celebrate = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Heat returns the cell style for a heat bucket.
func Heat(bucket int) lipgloss.Style {
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= len(HeatColors) {
		bucket = len(HeatColors) - 1
	}
	fg := Text
	if bucket == 2 {
		fg = TextDim
	}
	return lipgloss.NewStyle().Background(HeatColors[bucket]).Foreground(fg)
}
