package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/JonMunkholm/stockview/internal/stock"
)

const (
	PDFFilename    = "stock.pdf"
	PDFContentType = "application/pdf"
)

// PDF layout, in millimetres on portrait A4.
const (
	pageMargin   = 10.0
	tableTop     = 20.0
	tableWidth   = 190.0
	headerHeight = 10.0
	rowHeight    = 9.0
	headingSize  = 16.0
	tableSize    = 9.0
)

type rgb struct{ r, g, b int }

var (
	headingColor  = rgb{43, 128, 176}
	headerFillRGB = rgb{41, 128, 185}
	altRowFill    = rgb{224, 224, 224}
)

// PDFColumns are the table header labels. They line up one to one with
// stock.Record.Row.
var PDFColumns = []string{
	"Purchase Date",
	"Medicine Name",
	"Dosage",
	"Brand Name",
	"Purchase Price",
	"MRP",
	"Total Qty",
	"Expiry Date",
}

// pdfColumnWidths fixes the first two columns and shares the rest evenly.
var pdfColumnWidths = func() []float64 {
	widths := []float64{20, 30}
	rest := (tableWidth - 50) / float64(len(PDFColumns)-2)
	for len(widths) < len(PDFColumns) {
		widths = append(widths, rest)
	}
	return widths
}()

// Heading returns the title line printed on each page.
func Heading(c stock.Criteria) string {
	if c.HasRange() {
		return fmt.Sprintf("Stock Details from %s to %s", c.ExpiryFrom, c.ExpiryTo)
	}
	return "Stock Details as on Today"
}

// WritePDF writes the records as a table of stock.PageSize rows per page.
func WritePDF(w io.Writer, records []stock.Record, c stock.Criteria) error {
	pdf := buildPDF(records, c)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func buildPDF(records []stock.Record, c stock.Criteria) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle("Stock Details", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := Heading(c)
	pages := stock.PageCount(len(records))
	for n := 1; n <= pages; n++ {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", headingSize)
		setText(pdf, headingColor)
		pdf.Text(pageMargin, pageMargin, tr(heading))
		if n > 1 {
			label := fmt.Sprintf("Page %d", n)
			pdf.Text(pageMargin+tableWidth-pdf.GetStringWidth(label), pageMargin, label)
		}

		pdf.SetXY(pageMargin, tableTop)
		pdf.SetLineWidth(0.3)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetFont("Helvetica", "B", tableSize)
		setFill(pdf, headerFillRGB)
		pdf.SetTextColor(255, 255, 255)
		for i, label := range PDFColumns {
			pdf.CellFormat(pdfColumnWidths[i], headerHeight, fit(pdf, label, pdfColumnWidths[i]), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", tableSize)
		pdf.SetTextColor(0, 0, 0)
		setFill(pdf, altRowFill)
		for i, r := range stock.Paginate(records, n).Items {
			shade := i%2 == 1
			for j, cell := range r.Row() {
				pdf.CellFormat(pdfColumnWidths[j], rowHeight, fit(pdf, tr(cell), pdfColumnWidths[j]), "1", 0, "C", shade, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	return pdf
}

// fit shortens s until it fits inside a cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	const ellipsis = ".."
	for len(s) > 0 && pdf.GetStringWidth(s+ellipsis) > limit {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}

func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
