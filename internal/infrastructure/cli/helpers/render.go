package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/doeshing/sensi-go/internal/domain"
)

const sliderWidth = 24

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("202"))

	labelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(lipgloss.Color("252"))

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// SliderFill returns how many of width cells a sensitivity value fills.
// Values above the maximum fill the bar; negative values leave it empty.
func SliderFill(value, width int) int {
	if width <= 0 || value <= domain.MinSensitivity {
		return 0
	}
	if value >= domain.MaxSensitivity {
		return width
	}
	return value * width / domain.MaxSensitivity
}

// SliderBar draws a fixed-width bar for value.
func SliderBar(value, width int) string {
	filled := SliderFill(value, width)
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderSettings prints a lookup result.
func RenderSettings(out io.Writer, settings domain.SensitivitySettings) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(settings.DeviceName))
	b.WriteString("\n\n")

	for _, slider := range settings.DisplayedSliders() {
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(slider.Label),
			SliderBar(slider.Value, sliderWidth),
			valueStyle.Render(fmt.Sprint(slider.Value)))
	}

	fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("DPI"), valueStyle.Render(settings.DPI))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Fire button"), valueStyle.Render(settings.FireButtonSize))

	if len(settings.Tips) > 0 {
		b.WriteString("\n")
		for i, tip := range settings.Tips {
			fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), tip)
		}
	}

	fmt.Fprintln(out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// RenderHistory prints the history as a table, most recent first.
func RenderHistory(out io.Writer, items []domain.HistoryItem) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Time().Format(domain.TimestampFormat),
			item.DeviceName,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers("ID", "When", "Device").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(out, t.Render())
}
