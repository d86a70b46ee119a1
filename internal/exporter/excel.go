package exporter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"wmsapi/internal/report"
)

const sheetName = "Pick List"

// ContentTypeXLSX is the media type of the exported workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	headerFill = "#4472C4"
	totalFill  = "#D9E1F2"

	productColWidth = 32
	carrierColWidth = 14
)

// File is a rendered spreadsheet ready for download. Filename embeds the
// generation timestamp so repeated downloads never collide.
type File struct {
	Bytes       []byte
	ContentType string
	Filename    string
}

// WritePickList renders the pivot table into a styled xlsx workbook.
// Layout: a wide left-aligned "Product Name" column, one narrow centered
// column per carrier, and a final "Grand Total" column. The header and
// Total rows carry distinct solid fills with bold text; every cell has a
// thin border. Each row renders 1+|carriers|+1 cells even with no carriers.
func WritePickList(table *report.PivotTable) (*File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newPickListStyles(f)
	if err != nil {
		return nil, fmt.Errorf("create styles: %w", err)
	}

	columnCount := 1 + len(table.Carriers) + 1

	if err := setColumnWidths(f, columnCount); err != nil {
		return nil, fmt.Errorf("set column widths: %w", err)
	}

	// Header row
	header := make([]any, 0, columnCount)
	header = append(header, "Product Name")
	for _, carrier := range table.Carriers {
		header = append(header, carrier)
	}
	header = append(header, "Grand Total")
	if err := writeRow(f, 1, header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	// Product rows; blank cells stay unset so they render empty
	for i, row := range table.Rows {
		cells := make([]any, 0, columnCount)
		cells = append(cells, row.Product)
		for _, cell := range row.Cells {
			if cell.Blank {
				cells = append(cells, nil)
			} else {
				cells = append(cells, cellValue(cell.Quantity))
			}
		}
		cells = append(cells, cellValue(row.Total))
		if err := writeRow(f, 2+i, cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", 2+i, err)
		}
	}

	// Total row is always numeric, even when a column total is zero
	totalRowNum := 2 + len(table.Rows)
	totalRow := make([]any, 0, columnCount)
	totalRow = append(totalRow, "Total")
	for _, total := range table.ColumnTotals {
		totalRow = append(totalRow, cellValue(total))
	}
	totalRow = append(totalRow, cellValue(table.GrandTotal))
	if err := writeRow(f, totalRowNum, totalRow); err != nil {
		return nil, fmt.Errorf("write total row: %w", err)
	}

	if err := applyStyles(f, styles, columnCount, totalRowNum); err != nil {
		return nil, fmt.Errorf("apply styles: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	return &File{
		Bytes:       buf.Bytes(),
		ContentType: ContentTypeXLSX,
		Filename:    fmt.Sprintf("picklist_%d.xlsx", time.Now().UnixMilli()),
	}, nil
}

// pickListStyles holds the style IDs used across the sheet
type pickListStyles struct {
	header  int
	total   int
	data    int
	product int
}

func newPickListStyles(f *excelize.File) (*pickListStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	total, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalFill}},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	data, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	product, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	return &pickListStyles{header: header, total: total, data: data, product: product}, nil
}

func setColumnWidths(f *excelize.File, columnCount int) error {
	if err := f.SetColWidth(sheetName, "A", "A", productColWidth); err != nil {
		return err
	}
	if columnCount < 2 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(columnCount)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheetName, "B", last, carrierColWidth)
}

// writeRow writes values left to right on a 1-based row; nil values are
// skipped, leaving the cell empty
func writeRow(f *excelize.File, rowNum int, values []any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func applyStyles(f *excelize.File, styles *pickListStyles, columnCount, totalRowNum int) error {
	lastCol, err := excelize.ColumnNumberToName(columnCount)
	if err != nil {
		return err
	}

	// Header row
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}

	// Data region, when any product rows exist
	if totalRowNum > 2 {
		if err := f.SetCellStyle(sheetName,
			fmt.Sprintf("A%d", 2), fmt.Sprintf("A%d", totalRowNum-1), styles.product); err != nil {
			return err
		}
		if columnCount > 1 {
			if err := f.SetCellStyle(sheetName,
				fmt.Sprintf("B%d", 2), fmt.Sprintf("%s%d", lastCol, totalRowNum-1), styles.data); err != nil {
				return err
			}
		}
	}

	// Total row
	return f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", totalRowNum), fmt.Sprintf("%s%d", lastCol, totalRowNum), styles.total)
}

// cellValue converts a decimal quantity to the value written into a cell.
// Integral quantities become integers so the sheet shows 5, not 5.0.
// Magnitudes beyond int64 fall back to float64 rather than truncating.
func cellValue(d decimal.Decimal) any {
	if d.IsInteger() && d.BigInt().IsInt64() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
