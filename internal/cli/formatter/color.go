package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// plain switches output to unstyled ASCII for pipes and files.
var plain bool

// SetPlain turns styling and box drawing off (true) or on (false).
func SetPlain(on bool) { plain = on }

func render(style lipgloss.Style, text string) string {
	if plain {
		return text
	}
	return style.Render(text)
}

func glyph(fancy, ascii string) string {
	if plain {
		return ascii
	}
	return fancy
}

// StatusColor returns the style for a goal status.
func StatusColor(status domain.GoalStatus) lipgloss.Style {
	switch status {
	case domain.StatusSuccess:
		return StyleGreen
	case domain.StatusFailure:
		return StyleRed
	case domain.StatusIncomplete:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status label such as "● DONE".
func StatusIndicator(status domain.GoalStatus) string {
	style := StatusColor(status)
	switch status {
	case domain.StatusSuccess:
		return render(style, glyph("✔", "+")+" DONE")
	case domain.StatusFailure:
		return render(style, glyph("✖", "x")+" MISSED")
	case domain.StatusIncomplete:
		return render(style, glyph("●", "*")+" IN PROGRESS")
	case domain.StatusSkip:
		return render(style, glyph("○", "-")+" REST DAY")
	default:
		return render(StyleDim, glyph("○", "-")+" NO GOAL")
	}
}

// StreakBadge renders a streak count, highlighted once it is running.
func StreakBadge(n int) string {
	if n == 0 {
		return render(StyleDim, "0")
	}
	label := fmt.Sprintf("%d day", n)
	if n != 1 {
		label += "s"
	}
	return render(StylePurple, glyph("🔥 ", "")+label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat(glyph("─", "-"), len(upper))
	return fmt.Sprintf("%s\n%s", render(StyleHeader, upper), render(StyleDim, line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return render(StyleDim, text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return render(StyleBold, text)
}
