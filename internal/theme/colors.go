package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Capture state colors
const (
	ColorCamera      Color = "33"  // Blue - camera preview
	ColorIdle        Color = "3"   // Yellow - idle
	ColorMapping     Color = "1"   // Red - recording
	ColorProcessing  Color = "205" // Pink - background job
	ColorVisualizing Color = "2"   // Green - optimized map shown
	ColorWelcome     Color = "8"   // Gray - nothing loaded
)

// UI semantic colors
const (
	ColorDimmed          Color = "240"
	ColorError           Color = "196" // Bright red
	ColorHighlight       Color = "255" // White - emphasis
	ColorMuted           Color = "241" // Gray - secondary text
	ColorNormal          Color = "250" // Default text
	ColorPaletteSelected Color = "237"
	ColorScrollIndicator Color = "244"
	ColorSubtle          Color = "245" // Light gray - labels
	ColorVersion         Color = "240" // Dark gray
)

// Accent colors
const (
	ColorHelpGroup Color = "141" // Purple
	ColorHintKey   Color = "226" // Yellow
	ColorHintLabel Color = "178" // Gold
	ColorLoop      Color = "46"  // Bright green - loop closure
	ColorSpinner   Color = "205" // Pink
	ColorToast     Color = "229" // Pale yellow
)
