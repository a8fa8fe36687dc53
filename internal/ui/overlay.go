package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Dim style for background when overlay is shown
var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// compositeOverlay renders an overlay centered on top of a dimmed background
func compositeOverlay(background, overlay string, width, height int) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}

	startX := max((width-overlayWidth)/2, 0)
	startY := max((height-len(overlayLines))/2, 0)

	return placeOverlay(background, overlayLines, width, height, startY, func(line string) string {
		right := max(width-startX-lipgloss.Width(line), 0)
		return dimStyle.Render(strings.Repeat(" ", startX)) + line + dimStyle.Render(strings.Repeat(" ", right))
	})
}

// bottomAnchoredOverlay renders an overlay at the bottom of a dimmed background
func bottomAnchoredOverlay(background, overlay string, width, height int) string {
	overlayLines := strings.Split(overlay, "\n")
	startY := max(height-len(overlayLines), 0)

	return placeOverlay(background, overlayLines, width, height, startY, func(line string) string {
		return padLine(line, width)
	})
}

// placeOverlay dims background and replaces the lines from startY on with
// the rendered overlay lines
func placeOverlay(background string, overlayLines []string, width, height, startY int, render func(string) string) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i := range bgLines {
		if i >= startY && i < startY+len(overlayLines) {
			bgLines[i] = render(overlayLines[i-startY])
			continue
		}
		bgLines[i] = padLine(dimStyle.Render(ansi.Strip(bgLines[i])), width)
	}
	return strings.Join(bgLines, "\n")
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
