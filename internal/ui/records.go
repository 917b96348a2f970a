package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/taxdesk/internal/api"
	"github.com/gravitrone/taxdesk/internal/session"
	"github.com/gravitrone/taxdesk/internal/table"
	"github.com/gravitrone/taxdesk/internal/ui/components"
)

// TaxColumns is the column model for the records table: id, name, country
// and the row's edit action.
func TaxColumns() table.Model[api.Record] {
	return table.Model[api.Record]{
		table.Accessor[api.Record]("id", "ID", formatRecordID),
		table.Accessor[api.Record]("name", "Name", nil),
		table.Accessor[api.Record]("country", "Country", nil),
		table.ActionColumn("actions", "Actions", recordActions),
	}
}

func formatRecordID(id string) string {
	return "#" + id
}

func recordActions(api.Record) []table.Action {
	return []table.Action{{Name: "edit", Label: "Edit", Key: "e"}}
}

// fallbackWidth sizes the grid before the first window size message.
const fallbackWidth = 100

// gridWidths are the preferred widths per column name; the grid stretches
// the last column to fill.
var gridWidths = map[string]int{
	"id":      6,
	"name":    24,
	"country": 18,
	"actions": 10,
}

func gridColumns[R table.Row](model table.Model[R]) []components.TableColumn {
	cols := make([]components.TableColumn, len(model))
	for i, c := range model {
		w, ok := gridWidths[c.Name()]
		if !ok {
			w = 12
		}
		align := lipgloss.Left
		if c.Kind == table.KindAction {
			align = lipgloss.Center
		}
		cols[i] = components.TableColumn{Header: c.Header, Width: w, Align: align}
	}
	return cols
}

// --- Records View ---

func (a App) renderRecords() string {
	switch a.session.Phase {
	case session.PhaseLoading:
		return "  " + a.spinner.View() + " " + MutedStyle.Render("Loading data...")
	case session.PhaseFailed:
		message := "There was a problem fetching the tax records."
		if a.session.Err != nil {
			message += "\n\n" + components.SanitizeOneLine(a.session.Err.Error())
		}
		return components.ErrorBox("Error loading data", message+"\n\nPress r to retry.", a.width)
	}

	t := table.Render(a.columns, a.session.Records)
	if t.Empty() {
		return components.Box(MutedStyle.Render("No records found."), a.width)
	}

	first, last := a.rows.Window()
	rows := make([][]string, 0, last-first)
	i := 0
	for row := range t.Rows() {
		if i >= last {
			break
		}
		if i >= first {
			rows = append(rows, row.Texts())
		}
		i++
	}

	gridWidth := components.BoxContentWidth(a.width)
	if gridWidth <= 0 {
		gridWidth = components.BoxContentWidth(fallbackWidth)
	}
	grid := components.TableGridWithActiveRow(gridColumns(a.columns), rows, gridWidth, a.rows.Index()-first)
	countLine := MutedStyle.Render(fmt.Sprintf("Total Records: %d · Manage and view tax details by country.", t.Len()))
	return components.TitledBox("Tax Records", countLine+"\n\n"+grid, a.width)
}

func recordIDs(records []api.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// RecordsGrid renders every record as a plain grid, for non-interactive output.
func RecordsGrid(records []api.Record, width int) string {
	columns := TaxColumns()
	t := table.Render(columns, records)
	rows := make([][]string, 0, t.Len())
	for row := range t.Rows() {
		rows = append(rows, row.Texts())
	}
	if width <= 0 {
		width = fallbackWidth
	}
	return components.TableGrid(gridColumns(columns), rows, width)
}
