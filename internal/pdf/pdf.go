// Package pdf renders generated invoices as printable A4 documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/invoice"
)

// Document is everything printed on an invoice.
type Document struct {
	Crew    *domain.CrewMember
	Invoice *domain.Invoice
}

// FileName is the suggested download name.
func (d Document) FileName() string {
	return fmt.Sprintf("Invoice-%s.pdf", d.Crew.FullName)
}

// HeaderLines are the lines printed above the table.
func (d Document) HeaderLines() []string {
	return []string{
		"Invoice for: " + d.Crew.FullName,
		fmt.Sprintf("Crew ID: %d", d.Crew.ID),
		"Position: " + d.Crew.Role,
		"Status: " + d.Crew.Status,
		fmt.Sprintf("Invoice Date Range: %s to %s",
			d.Invoice.StartDate.Format(invoice.DisplayDateLayout),
			d.Invoice.EndDate.Format(invoice.DisplayDateLayout)),
	}
}

var TableHeader = []string{"Job Title", "Units", "Rate", "Total"}

// TableRows renders one row per line item.
func (d Document) TableRows() [][]string {
	rows := make([][]string, 0, len(d.Invoice.Breakdown))
	for _, item := range d.Invoice.Breakdown {
		rows = append(rows, []string{
			item.EventTitle,
			fmt.Sprintf("%d (%s)", item.BillableDays, item.Unit),
			fmt.Sprintf("%s %s", invoice.FormatAmount(item.Rate), item.Currency),
			invoice.FormatAmount(item.Total),
		})
	}
	return rows
}

// TotalLine is printed under the table.
func (d Document) TotalLine() string {
	return fmt.Sprintf("Total: %s %s", invoice.FormatAmount(d.Invoice.Total), d.Invoice.Currency)
}

// Renderer draws documents with gofpdf.
type Renderer struct {
	columnWidths []float64
}

func NewRenderer() *Renderer {
	return &Renderer{columnWidths: []float64{80, 35, 35, 32}}
}

// Render returns the PDF bytes for doc.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 12)
	y := 15.0
	for _, line := range doc.HeaderLines() {
		pdf.Text(14, y, tr(line))
		y += 7
	}
	pdf.SetXY(14, y+3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, title := range TableHeader {
		pdf.CellFormat(r.columnWidths[i], 8, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for n, row := range doc.TableRows() {
		pdf.SetX(14)
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i, cell := range row {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(r.columnWidths[i], 7, tr(cell), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(10, pdf.GetY()+10, tr(doc.TotalLine()))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The invoice document could not be rendered.").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}
