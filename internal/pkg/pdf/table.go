package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Column describes one table column; Width is in millimetres.
type Column struct {
	Header string
	Width  float64
}

// Table is a titled report rendered on landscape A4 pages.
type Table struct {
	Title       string
	Subtitle    string
	Columns     []Column
	Rows        [][]string
	GeneratedAt time.Time
}

const rowHeight = 7

// Render writes the table as a PDF document to w. The header row is repeated
// on every page.
func Render(w io.Writer, table Table) error {
	if len(table.Columns) == 0 {
		return fmt.Errorf("pdf: table has no columns")
	}

	doc := gofpdf.New("L", "mm", "A4", "")
	doc.SetTitle(table.Title, true)
	doc.SetAutoPageBreak(false, 15)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := doc.GetPageSize()
	_, _, _, bottom := doc.GetMargins()

	header := func() {
		doc.SetFont("Helvetica", "B", 10)
		doc.SetFillColor(230, 230, 230)
		for _, col := range table.Columns {
			doc.CellFormat(col.Width, rowHeight, tr(col.Header), "1", 0, "L", true, 0, "")
		}
		doc.Ln(-1)
		doc.SetFont("Helvetica", "", 10)
	}

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, tr(table.Title))
	doc.Ln(10)
	if table.Subtitle != "" || !table.GeneratedAt.IsZero() {
		doc.SetFont("Helvetica", "", 10)
		line := table.Subtitle
		if !table.GeneratedAt.IsZero() {
			if line != "" {
				line += "  "
			}
			line += "Generated " + table.GeneratedAt.Format("2006-01-02 15:04 MST")
		}
		doc.Cell(0, 6, tr(line))
		doc.Ln(8)
	}
	header()

	if len(table.Rows) == 0 {
		doc.CellFormat(totalWidth(table.Columns), rowHeight, "No entries", "1", 0, "C", false, 0, "")
		doc.Ln(-1)
	}

	for _, row := range table.Rows {
		if doc.GetY()+rowHeight > pageHeight-bottom {
			doc.AddPage()
			header()
		}
		for i, col := range table.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			doc.CellFormat(col.Width, rowHeight, tr(value), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func totalWidth(cols []Column) float64 {
	var total float64
	for _, c := range cols {
		total += c.Width
	}
	return total
}
