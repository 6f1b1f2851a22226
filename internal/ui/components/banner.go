package components

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

const bannerArt = `███████╗ █████╗  ██████╗████████╗███████╗
██╔════╝██╔══██╗██╔════╝╚══██╔══╝╚══███╔╝
█████╗  ███████║██║        ██║     ███╔╝ 
██╔══╝  ██╔══██║██║        ██║    ███╔╝  
██║     ██║  ██║╚██████╗   ██║   ███████╗
╚═╝     ╚═╝  ╚═╝ ╚═════╝   ╚═╝   ╚══════╝`

const bannerCompact = "F · A · C · T · Z"

// bannerMinWidth is the narrowest width that fits the block letters.
const bannerMinWidth = 44

// Banner returns the FACTZ title in the given color, falling back to
// spaced letters when width is too narrow for the block art.
func Banner(width int, fg color.Color) string {
	style := lipgloss.NewStyle().Foreground(fg).Bold(true)
	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
