package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/five82/labelprint/internal/config"
	"github.com/five82/labelprint/internal/label"
)

// column renders one label attribute in the table.
type column struct {
	title string
	value func(label.Label) string
}

func labelName(l label.Label) string    { return l.Name() }
func labelBarcode(l label.Label) string { return l.Barcode() }

func labelDate(l label.Label) string {
	date, _ := l.Date()
	return date
}

// labelColumns picks the table columns for cfg. The row number always comes
// first; name and barcode share a column because they hold the same value.
func labelColumns(cfg config.Config) []column {
	if cfg.Format != config.FormatGraphQL && cfg.LabelMode == config.ModeSingle {
		return []column{{title: "Text", value: labelName}}
	}
	var cols []column
	name, barcode := cfg.FieldEnabled("name"), cfg.FieldEnabled("barcode")
	switch {
	case name && barcode:
		cols = append(cols, column{title: "Name/Barcode", value: labelName})
	case barcode:
		cols = append(cols, column{title: "Barcode", value: labelBarcode})
	case name:
		cols = append(cols, column{title: "Name", value: labelName})
	}
	if cfg.FieldEnabled("date") {
		cols = append(cols, column{title: "Date", value: labelDate})
	}
	return cols
}

// explanation tells the operator what to paste, based on the number of
// table columns including the row number.
func explanation(columns int) string {
	switch columns {
	case 0, 1:
		return ""
	case 2:
		return "You can paste a column from a spreadsheet."
	case 3:
		return "You can paste two columns from a spreadsheet. " +
			"The left column should be the name/barcode. " +
			"The right column should be the date."
	default:
		return "You can paste columns from a spreadsheet."
	}
}

const indexWidth = 6

// tableColumns sizes the columns to share width after the row number.
func tableColumns(cols []column, width int) []table.Column {
	out := []table.Column{{Title: "#", Width: indexWidth}}
	if len(cols) == 0 {
		return out
	}
	each := (width - indexWidth - 2*(len(cols)+1)) / len(cols)
	if each < 8 {
		each = 8
	}
	for _, c := range cols {
		out = append(out, table.Column{Title: c.title, Width: each})
	}
	return out
}

// tableRows numbers the labels from 1.
func tableRows(cols []column, labels []label.Label) []table.Row {
	rows := make([]table.Row, 0, len(labels))
	for i, l := range labels {
		row := table.Row{strconv.Itoa(i + 1)}
		for _, c := range cols {
			row = append(row, c.value(l))
		}
		rows = append(rows, row)
	}
	return rows
}
