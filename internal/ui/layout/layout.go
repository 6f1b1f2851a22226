// Package layout draws the frame around every screen: the status header,
// the key-hint footer and the too-small fallback.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

const (
	MinWidth  = 64
	MinHeight = 24

	// CompactWidth is the width below which screens drop decorations.
	CompactWidth = 100
)

type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small!\n\nNeed at least %d x %d\nGot %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Render(text)
}

// bar is the rounded card used for both header and footer.
func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// spread lays out three segments so that center sits in the middle of
// inner and right hugs the end. Gaps never drop below one column.
func spread(inner int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gap1 := max((inner-cw)/2-lw, 1)
	gap2 := max(inner-lw-gap1-cw-rw, 1)
	return left + strings.Repeat(" ", gap1) + center + strings.Repeat(" ", gap2) + right
}

// RenderHeader shows the app name, the screen title and, when level is
// positive, the level and perfect-round streak.
func RenderHeader(title string, level, streak int, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Factz")
	heading := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	status := ""
	if level > 0 {
		lv := lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Lv %d", level))
		st := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d", streak))
		status = lv + "   " + st
	}

	return bar(width, spread(max(width-4, 0), name, heading, status))
}

func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(" ")
	for _, h := range hints {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(h.Key))
		b.WriteString(" ")
		b.WriteString(descStyle.Render(h.Description))
		b.WriteString(" ")
	}
	return bar(width, strings.TrimRight(b.String(), " "))
}

// RenderFrame stacks header, content and footer. The content area takes
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Center places s in the middle of width.
func Center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// CenterLine renders s with style, centered in width.
func CenterLine(width int, style lipgloss.Style, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
