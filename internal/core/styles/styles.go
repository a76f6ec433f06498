// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	// Highlight tints, blended toward the background.
	ColorValidBg   color.Color
	ColorFlaggedBg color.Color
)

// Style exports.
var (
	// Scene segment styles.
	PlainSegmentStyle   lipgloss.Style
	ValidSegmentStyle   lipgloss.Style
	FlaggedSegmentStyle lipgloss.Style

	// Layout styles.
	TitleStyle          lipgloss.Style
	SceneTabStyle       lipgloss.Style
	SceneTabActiveStyle lipgloss.Style
	SceneBoxStyle       lipgloss.Style
	StatusStyle         lipgloss.Style
	HelpStyle           lipgloss.Style
	LegendStyle         lipgloss.Style

	// Toast styles.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	ColorValidBg = Blend(p.Success, p.Background, 0.35)
	ColorFlaggedBg = Blend(p.Error, p.Background, 0.45)

	PlainSegmentStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ValidSegmentStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorValidBg)
	FlaggedSegmentStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorFlaggedBg).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SceneTabStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	SceneTabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	SceneBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		PaddingLeft(1)
	LegendStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ToastInfoStyle = toastStyle(ColorPrimary)
	ToastWarningStyle = toastStyle(ColorWarning)
	ToastErrorStyle = toastStyle(ColorError)
}

func toastStyle(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Foreground(ColorForeground).
		Padding(0, 1)
}

// SegmentStyle maps a segment style to its lipgloss style.
func SegmentStyle(s annotation.Style) lipgloss.Style {
	switch s {
	case annotation.StyleValid:
		return ValidSegmentStyle
	case annotation.StyleFlagged:
		return FlaggedSegmentStyle
	default:
		return PlainSegmentStyle
	}
}

// Blend mixes c toward base; t=1 returns c, t=0 returns base. Colors that
// cannot be converted fall back to c.
func Blend(c, base color.Color, t float64) color.Color {
	fg, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	bg, ok := colorful.MakeColor(base)
	if !ok {
		return c
	}
	return lipgloss.Color(bg.BlendLab(fg, t).Clamped().Hex())
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
