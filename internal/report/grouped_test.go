package report

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestGroupByCarrier_FirstSeenOrder(t *testing.T) {
	rows := []AggregatedRow{
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(5)},
		{Carrier: "Ekart", Product: "Gadget", Quantity: qty(2)},
		{Carrier: "Delhivery", Product: "Widget", Quantity: qty(3)},
	}

	groups := GroupByCarrier(rows)

	require.Len(t, groups, 2)
	assert.Equal(t, "Ekart", groups[0].Carrier)
	assert.Equal(t, "Delhivery", groups[1].Carrier)

	require.Len(t, groups[0].Products, 2)
	assert.Equal(t, "Widget", groups[0].Products[0].Product)
	assert.True(t, groups[0].Products[0].Quantity.Equal(qty(5)))
	assert.Equal(t, "Gadget", groups[0].Products[1].Product)
	assert.True(t, groups[0].Products[1].Quantity.Equal(qty(2)))

	require.Len(t, groups[1].Products, 1)
	assert.Equal(t, "Widget", groups[1].Products[0].Product)
	assert.True(t, groups[1].Products[0].Quantity.Equal(qty(3)))
}

func TestGroupByCarrier_Empty(t *testing.T) {
	groups := GroupByCarrier(nil)
	require.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByCarrier_PreservesTotalQuantity(t *testing.T) {
	rows := []AggregatedRow{
		{Carrier: "Ekart", Product: "Widget", Quantity: qty(5)},
		{Carrier: "Delhivery", Product: "Widget", Quantity: qty(3)},
		{Carrier: "Ekart", Product: "Gadget", Quantity: qty(2)},
	}

	total := decimal.Zero
	for _, g := range GroupByCarrier(rows) {
		for _, p := range g.Products {
			total = total.Add(p.Quantity)
		}
	}

	assert.True(t, total.Equal(qty(10)), "grouped total %s", total)
}

func TestGroupByCarrier_ManyCarriers(t *testing.T) {
	// One row per carrier; the index must keep construction linear and the
	// output must keep input order.
	rows := make([]AggregatedRow, 0, 500)
	for i := 0; i < 500; i++ {
		rows = append(rows, AggregatedRow{
			Carrier:  fmt.Sprintf("carrier-%04d", i),
			Product:  "Widget",
			Quantity: qty(1),
		})
	}

	groups := GroupByCarrier(rows)

	require.Len(t, groups, 500)
	for i, g := range groups {
		assert.Equal(t, fmt.Sprintf("carrier-%04d", i), g.Carrier)
	}
}
