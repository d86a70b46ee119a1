package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wmsapi/internal/report"
)

func qty(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func samplePivot() *report.PivotTable {
	return &report.PivotTable{
		Carriers: []string{"Delhivery", "Ekart"},
		Rows: []report.PivotRow{
			{
				Product: "Gadget",
				Cells:   []report.Cell{{Blank: true}, {Quantity: qty(2)}},
				Total:   qty(2),
			},
			{
				Product: "Widget",
				Cells:   []report.Cell{{Quantity: qty(3)}, {Quantity: qty(5)}},
				Total:   qty(8),
			},
		},
		ColumnTotals: []decimal.Decimal{qty(3), qty(7)},
		GrandTotal:   qty(10),
	}
}

func TestWritePickList_Layout(t *testing.T) {
	file, err := WritePickList(samplePivot())
	require.NoError(t, err)
	require.NotEmpty(t, file.Bytes)
	assert.Equal(t, ContentTypeXLSX, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Bytes))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Pick List")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Product Name", "Delhivery", "Ekart", "Grand Total"}, rows[0])
	assert.Equal(t, []string{"Gadget", "", "2", "2"}, rows[1])
	assert.Equal(t, []string{"Widget", "3", "5", "8"}, rows[2])
	assert.Equal(t, []string{"Total", "3", "7", "10"}, rows[3])
}

func TestWritePickList_BlankCellStaysEmpty(t *testing.T) {
	file, err := WritePickList(samplePivot())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Bytes))
	require.NoError(t, err)
	defer f.Close()

	// Gadget has no Delhivery shipments; the cell must be empty, not zero
	value, err := f.GetCellValue("Pick List", "B2")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestWritePickList_EmptyTable(t *testing.T) {
	table := &report.PivotTable{
		Carriers:     []string{},
		Rows:         []report.PivotRow{},
		ColumnTotals: []decimal.Decimal{},
		GrandTotal:   decimal.Zero,
	}

	file, err := WritePickList(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Bytes))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Pick List")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Product Name", "Grand Total"}, rows[0])
	assert.Equal(t, []string{"Total", "0"}, rows[1])
}

func TestWritePickList_FractionalQuantities(t *testing.T) {
	half := decimal.NewFromFloat(2.5)
	table := &report.PivotTable{
		Carriers: []string{"Ekart"},
		Rows: []report.PivotRow{
			{Product: "Widget", Cells: []report.Cell{{Quantity: half}}, Total: half},
		},
		ColumnTotals: []decimal.Decimal{half},
		GrandTotal:   half,
	}

	file, err := WritePickList(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Bytes))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Pick List", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2.5", value)
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, int64(5), cellValue(decimal.NewFromInt(5)))
	assert.Equal(t, 2.5, cellValue(decimal.NewFromFloat(2.5)))

	// Integral values beyond int64 must not wrap around
	huge := decimal.RequireFromString("18446744073709551616")
	value, ok := cellValue(huge).(float64)
	require.True(t, ok)
	assert.InEpsilon(t, 1.8446744073709552e19, value, 1e-9)
}

func TestWritePickList_Filename(t *testing.T) {
	file, err := WritePickList(samplePivot())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(file.Filename, "picklist_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	stamp := strings.TrimSuffix(strings.TrimPrefix(file.Filename, "picklist_"), ".xlsx")
	assert.Regexp(t, `^\d{13,}$`, stamp)
}
