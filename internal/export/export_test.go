package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/stockview/internal/stock"
)

func records(n int) []stock.Record {
	out := make([]stock.Record, n)
	for i := range out {
		out[i] = stock.Record{
			ID:            stock.ID(fmt.Sprint(i + 1)),
			MedicineName:  fmt.Sprintf("Medicine %d", i+1),
			Dosage:        "250mg",
			BrandName:     "Acme",
			PurchasePrice: stock.AmountOf(decimal.RequireFromString("4.20")),
			MRP:           stock.AmountOf(decimal.NewFromInt(6)),
			TotalQty:      stock.AmountOf(decimal.NewFromInt(40)),
			PurchaseDate:  stock.MustDate("2024-02-01"),
			ExpiryDate:    stock.MustDate("2026-02-01T00:00:00Z"),
		}
	}
	return out
}

func TestWriteSpreadsheet(t *testing.T) {
	in := records(3)
	in[1].Dosage = ""
	in[1].TotalQty = stock.Amount{}
	in[2].ExpiryDate = stock.Date{}

	var buf bytes.Buffer
	if err := WriteSpreadsheet(&buf, in); err != nil {
		t.Fatalf("WriteSpreadsheet() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != "StockData" {
		t.Fatalf("sheets = %v, want [StockData]", got)
	}

	rows, err := f.GetRows("StockData")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if strings.Join(rows[0], "|") != strings.Join(SpreadsheetColumns, "|") {
		t.Errorf("header = %v", rows[0])
	}

	want := []string{"2024-02-01", "Medicine 1", "250mg", "Acme", "4.2", "6", "40", "2026-02-01"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Errorf("row 1 = %v, want %v", rows[1], want)
	}
	if rows[2][2] != "0" || rows[2][6] != "0" {
		t.Errorf("missing values should render as 0, got %v", rows[2])
	}
	if rows[3][7] != "0" {
		t.Errorf("missing expiry should render as 0, got %q", rows[3][7])
	}
}

func TestWriteSpreadsheet_HeaderStyle(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSpreadsheet(&buf, records(1)); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	id, err := f.GetCellStyle("StockData", "C1")
	if err != nil {
		t.Fatal(err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatal(err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("header font should be bold")
	}
	if len(style.Fill.Color) == 0 || !strings.EqualFold(style.Fill.Color[0], "001F3F") {
		t.Errorf("header fill = %v, want 001F3F", style.Fill.Color)
	}
	if len(style.Border) != 4 {
		t.Errorf("header borders = %d, want 4", len(style.Border))
	}

	width, err := f.GetColWidth("StockData", "H")
	if err != nil {
		t.Fatal(err)
	}
	if width != 15 {
		t.Errorf("column width = %v, want 15", width)
	}
}

func TestBuildPDF_PageCount(t *testing.T) {
	tests := []struct {
		records int
		pages   int
	}{
		{0, 1},
		{1, 1},
		{25, 1},
		{26, 2},
		{60, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.records), func(t *testing.T) {
			pdf := buildPDF(records(tt.records), stock.Criteria{})
			if err := pdf.Error(); err != nil {
				t.Fatalf("build error = %v", err)
			}
			if got := pdf.PageCount(); got != tt.pages {
				t.Errorf("PageCount() = %d, want %d", got, tt.pages)
			}
		})
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	c := stock.Criteria{ExpiryFrom: stock.MustDate("2025-01-01"), ExpiryTo: stock.MustDate("2025-12-31")}
	if err := WritePDF(&buf, records(30), c); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		c    stock.Criteria
		want string
	}{
		{"no range", stock.Criteria{}, "Stock Details as on Today"},
		{"from only", stock.Criteria{ExpiryFrom: stock.MustDate("2025-01-01")}, "Stock Details as on Today"},
		{
			"both bounds",
			stock.Criteria{ExpiryFrom: stock.MustDate("2025-01-01"), ExpiryTo: stock.MustDate("2025-06-30")},
			"Stock Details from 2025-01-01 to 2025-06-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Heading(tt.c); got != tt.want {
				t.Errorf("Heading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColumnsAlignWithRow(t *testing.T) {
	row := records(1)[0].Row()
	if len(row) != len(SpreadsheetColumns) || len(row) != len(PDFColumns) || len(pdfColumnWidths) != len(PDFColumns) {
		t.Errorf("row has %d cells; spreadsheet %d, pdf %d columns, %d widths",
			len(row), len(SpreadsheetColumns), len(PDFColumns), len(pdfColumnWidths))
	}
}
