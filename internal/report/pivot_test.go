package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPivot_Scenario(t *testing.T) {
	rows := []AggregatedRow{
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(5)},
		{Carrier: "Delhivery", Product: "Widget", Quantity: qty(3)},
		{Carrier: "Ekart", Product: "Gadget", Quantity: qty(2)},
	}

	table := BuildPivot(rows)

	assert.Equal(t, []string{"Delhivery", "Ekart"}, table.Carriers)
	require.Len(t, table.Rows, 2)

	gadget := table.Rows[0]
	assert.Equal(t, "Gadget", gadget.Product)
	require.Len(t, gadget.Cells, 2)
	assert.True(t, gadget.Cells[0].Blank, "Gadget has no Delhivery quantity")
	assert.False(t, gadget.Cells[1].Blank)
	assert.True(t, gadget.Cells[1].Quantity.Equal(qty(2)))
	assert.True(t, gadget.Total.Equal(qty(2)))

	widget := table.Rows[1]
	assert.Equal(t, "Widget", widget.Product)
	assert.True(t, widget.Cells[0].Quantity.Equal(qty(3)))
	assert.True(t, widget.Cells[1].Quantity.Equal(qty(5)))
	assert.True(t, widget.Total.Equal(qty(8)))

	require.Len(t, table.ColumnTotals, 2)
	assert.True(t, table.ColumnTotals[0].Equal(qty(3)))
	assert.True(t, table.ColumnTotals[1].Equal(qty(7)))
	assert.True(t, table.GrandTotal.Equal(qty(10)))
}

func TestBuildPivot_Empty(t *testing.T) {
	table := BuildPivot(nil)

	assert.Empty(t, table.Carriers)
	assert.Empty(t, table.Rows)
	assert.Empty(t, table.ColumnTotals)
	assert.True(t, table.GrandTotal.IsZero())
}

func TestBuildPivot_ZeroQuantityProductKeepsRow(t *testing.T) {
	rows := []AggregatedRow{
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(5)},
		{Carrier: "Ekart", Product: "Doohickey", Quantity: qty(0)},
	}

	table := BuildPivot(rows)

	require.Len(t, table.Rows, 2)
	doohickey := table.Rows[0]
	assert.Equal(t, "Doohickey", doohickey.Product)
	require.Len(t, doohickey.Cells, 1)
	assert.True(t, doohickey.Cells[0].Blank)
	assert.True(t, doohickey.Total.IsZero())
}

func TestBuildPivot_NegativeSumRendersBlankButKeepsMembership(t *testing.T) {
	// Returns can drive a pair's sum negative. The pair still contributes
	// its carrier and product to the matrix axes but renders blank and
	// counts as zero everywhere.
	rows := []AggregatedRow{
		{Carrier: "Bluedart", Product: "Widget", Quantity: qty(-4)},
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(5)},
	}

	table := BuildPivot(rows)

	assert.Equal(t, []string{"Bluedart", "Ekart"}, table.Carriers)
	require.Len(t, table.Rows, 1)
	widget := table.Rows[0]
	assert.True(t, widget.Cells[0].Blank)
	assert.True(t, widget.Cells[1].Quantity.Equal(qty(5)))
	assert.True(t, widget.Total.Equal(qty(5)))
	assert.True(t, table.ColumnTotals[0].IsZero())
	assert.True(t, table.GrandTotal.Equal(qty(5)))
}

func TestBuildPivot_FractionalQuantities(t *testing.T) {
	half := decimal.RequireFromString("0.5")
	rows := []AggregatedRow{
		{Carrier: "Ekart", Product: "Widget", Quantity: half},
		{Carrier: "Delhivery", Product: "Widget", Quantity: half},
	}

	table := BuildPivot(rows)

	assert.True(t, table.Rows[0].Total.Equal(decimal.NewFromInt(1)))
	assert.True(t, table.GrandTotal.Equal(decimal.NewFromInt(1)))
}

// Matrix consistency: every row total is the sum of its cells, every column
// total is the sum of its column, and the grand total closes both ways.
func TestBuildPivot_TotalsReconcile(t *testing.T) {
	rows := []AggregatedRow{
		{Carrier: "Bluedart", Product: "Anvil", Quantity: qty(7)},
		{Carrier: "Bluedart", Product: "Widget", Quantity: qty(1)},
		{Carrier: "Delhivery", Product: "Anvil", Quantity: qty(2)},
		{Carrier: "Delhivery", Product: "Gadget", Quantity: qty(9)},
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(4)},
		{Carrier: "Ekart", Product: "Gizmo", Quantity: qty(-3)},
	}

	table := BuildPivot(rows)

	rowSum := decimal.Zero
	colSums := make([]decimal.Decimal, len(table.Carriers))
	for _, row := range table.Rows {
		cellSum := decimal.Zero
		for i, cell := range row.Cells {
			if !cell.Blank {
				cellSum = cellSum.Add(cell.Quantity)
				colSums[i] = colSums[i].Add(cell.Quantity)
			}
		}
		assert.True(t, cellSum.Equal(row.Total), "row %s: cells %s != total %s", row.Product, cellSum, row.Total)
		rowSum = rowSum.Add(row.Total)
	}

	colSum := decimal.Zero
	for i, total := range table.ColumnTotals {
		assert.True(t, colSums[i].Equal(total), "column %s: cells %s != total %s", table.Carriers[i], colSums[i], total)
		colSum = colSum.Add(total)
	}

	assert.True(t, table.GrandTotal.Equal(rowSum))
	assert.True(t, table.GrandTotal.Equal(colSum))
}

func TestBuildPivot_IndependentCalls(t *testing.T) {
	rows := []AggregatedRow{
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(5)},
	}

	first := BuildPivot(rows)
	second := BuildPivot(rows)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.ColumnTotals[0].Equal(second.ColumnTotals[0]),
		"accumulators must be call-local, not shared")
}
