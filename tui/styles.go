package tui

import (
	"fmt"
	"image"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple

	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	ColorBorder    = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F9FAFB") // Almost white
	ColorTextMuted = lipgloss.Color("#9CA3AF") // Gray
	ColorSelected  = lipgloss.Color("#7C3AED") // Purple
)

type Theme struct {
	HeaderStyle       lipgloss.Style
	NormalTextStyle   lipgloss.Style
	MutedTextStyle    lipgloss.Style
	SelectedItemStyle lipgloss.Style
	PreviewStyle      lipgloss.Style
	ErrorStyle        lipgloss.Style
	SuccessStyle      lipgloss.Style
	WarningStyle      lipgloss.Style
	HelpStyle         lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1),

		NormalTextStyle: lipgloss.NewStyle().
			Foreground(ColorText),

		MutedTextStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted),

		SelectedItemStyle: lipgloss.NewStyle().
			Foreground(ColorSelected).
			Bold(true).
			Background(lipgloss.Color("#312E81")), // Dark purple

		PreviewStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		SuccessStyle: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		WarningStyle: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		HelpStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true),
	}
}

const (
	IconCheck      = "✓"
	IconCross      = "✗"
	IconArrowRight = "▶"
	IconPending    = "…"
)

func StatusBadge(text string, statusType string, theme *Theme) string {
	var style lipgloss.Style

	switch statusType {
	case "success":
		style = theme.SuccessStyle.Copy().Background(lipgloss.Color("#065F46"))
	case "error":
		style = theme.ErrorStyle.Copy().Background(lipgloss.Color("#7F1D1D"))
	case "warning":
		style = theme.WarningStyle.Copy().Background(lipgloss.Color("#78350F"))
	case "info":
		style = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(lipgloss.Color("#1E3A8A")).
			Bold(true)
	default:
		style = theme.NormalTextStyle
	}

	return style.Padding(0, 1).Render(text)
}

func KeyHelp(key, description string, theme *Theme) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color("#1F2937"))

	return keyStyle.Render(key) + " " + theme.MutedTextStyle.Render(description)
}

// RenderThumbnail draws img with upper-half blocks, two pixel rows per line.
func RenderThumbnail(img image.Image) string {
	b := img.Bounds()
	var out string
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img, x, y))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img, x, y+1))
			}
			out += style.Render("▀")
		}
		if y+2 < b.Max.Y {
			out += "\n"
		}
	}
	return out
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
