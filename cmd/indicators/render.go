package main

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
)

const undefinedCell = "n/a"

var (
	// TitleStyle is the style for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HeaderStyle is the style for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)

	// CellStyle is the style for table cells.
	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	// BorderStyle is the style for table borders.
	BorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}

			return CellStyle
		})
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(time.DateOnly)
	}

	return t.Format(time.DateTime)
}

// renderSnapshot renders one row per indicator in snapshot order.
func renderSnapshot(symbol string, snapshot indicator.Snapshot) string {
	t := newTable("Indicator", "Value")

	for _, name := range snapshot.Names() {
		cell := undefinedCell
		if value, ok := snapshot.Value(name); ok {
			cell = formatFloat(value)
		}

		t.Row(string(name), cell)
	}

	return TitleStyle.Render(symbol) + "\n" + t.String()
}

// renderSeries renders the OHLCV periods of a series.
func renderSeries(series types.Series) string {
	t := newTable("Time", "Open", "High", "Low", "Close", "Volume")

	for _, bar := range series.Bars {
		t.Row(
			formatTime(bar.Time),
			formatFloat(bar.Open),
			formatFloat(bar.High),
			formatFloat(bar.Low),
			formatFloat(bar.Close),
			formatFloat(bar.Volume),
		)
	}

	return TitleStyle.Render(series.Symbol) + "\n" + t.String()
}

// renderFrame renders the close price with every indicator column.
func renderFrame(frame indicator.Frame) string {
	headers := []string{"Time", "Close"}
	for _, name := range frame.Columns {
		headers = append(headers, string(name))
	}

	t := newTable(headers...)

	for _, row := range frame.Rows() {
		cells := []string{formatTime(row.Time), formatFloat(row.Close)}

		for _, name := range frame.Columns {
			cell := undefinedCell
			if value := row.Values[name]; value.IsSome() {
				cell = formatFloat(value.Unwrap())
			}

			cells = append(cells, cell)
		}

		t.Row(cells...)
	}

	return TitleStyle.Render(frame.Series.Symbol) + "\n" + t.String()
}

// renderProviders renders the provider registry.
func renderProviders(providers []marketdata.ProviderInfo) string {
	t := newTable("Name", "Provider", "Auth", "Description")

	for _, info := range providers {
		auth := "no"
		if info.RequiresAuth {
			auth = "yes"
		}

		t.Row(info.Name, info.DisplayName, auth, info.Description)
	}

	return t.String()
}
