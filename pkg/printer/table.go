package printer

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TablePrinter collects rows and renders them as an aligned table.
type TablePrinter struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

// NewTablePrinter returns a table writing to w.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{w: w}
}

// SetHeaders sets the column titles.
func (t *TablePrinter) SetHeaders(headers ...string) *TablePrinter {
	t.headers = headers
	return t
}

// AddRow appends a row. Missing cells render empty.
func (t *TablePrinter) AddRow(cells ...string) *TablePrinter {
	row := make([]string, max(len(cells), len(t.headers)))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return t
}

// Render writes the table.
func (t *TablePrinter) Render() error {
	table := tablewriter.NewWriter(t.w)
	table.Header(t.headers)
	for _, row := range t.rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
