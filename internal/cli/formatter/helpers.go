package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
// In plain mode the title is printed as a header instead.
func RenderBox(title string, content string) string {
	if plain {
		if title == "" {
			return content
		}
		return Header(title) + "\n" + content
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDay describes date relative to today, e.g. "Yesterday" or "In 3d".
func RelativeDay(date, today calendar.Date) string {
	days := date.DaysSince(today)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// HumanDate renders date as "Mon Jan 2, 2006".
func HumanDate(date calendar.Date) string {
	return date.Time().Format("Mon Jan 2, 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return Dim(id)
}

// Quantity renders a value with its unit, trimming needless decimals.
func Quantity(v decimal.Decimal, unit string) string {
	s := v.String()
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Ratio returns total/target clamped to [0, 1], or 0 for a zero target.
func Ratio(total, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	r, _ := total.Div(target).Float64()
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
