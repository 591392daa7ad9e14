// Package export renders a filtered stock list as a downloadable
// spreadsheet or PDF. Both formats share the column set returned by
// stock.Record.Row.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/stockview/internal/stock"
)

const (
	SpreadsheetFilename    = "stock.xlsx"
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName   = "StockData"
	columnWidth = 15
	headerFill  = "001F3F"
	headerFont  = "FFFFFF"
)

// SpreadsheetColumns are the header labels of the spreadsheet.
var SpreadsheetColumns = []string{
	"Purchase Date",
	"Medicine Name",
	"Dosage",
	"Brand Names",
	"Purchase Price",
	"MRP",
	"Total Qty",
	"Expiry Date",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteSpreadsheet writes every record, unpaginated, as one xlsx sheet.
func WriteSpreadsheet(w io.Writer, records []stock.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(SpreadsheetColumns))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Font:      &excelize.Font{Bold: true, Color: headerFont},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return fmt.Errorf("body style: %w", err)
	}

	if err := writeRow(f, 1, SpreadsheetColumns, headerStyle, lastCol); err != nil {
		return err
	}
	for i, r := range records {
		if err := writeRow(f, i+2, r.Row(), bodyStyle, lastCol); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, cells []string, style int, lastCol string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}

	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, start, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	end := fmt.Sprintf("%s%d", lastCol, row)
	if err := f.SetCellStyle(sheetName, start, end, style); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}
