package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BuildPivot reshapes aggregated rows into the dense product-by-carrier
// matrix. Carrier columns and product rows are sorted lexicographically so
// the layout is reproducible across runs. A cell holds its quantity only
// when the aggregated sum is strictly positive; otherwise it is blank and
// contributes zero to every total. Pairs absent from the input are implicit
// zeros. A product whose sums are non-positive for every carrier still gets
// a row: set membership comes from the aggregated output, not magnitude.
//
// All accumulation state is local to the call, so concurrent builds never
// interfere.
func BuildPivot(rows []AggregatedRow) *PivotTable {
	carrierSet := make(map[string]struct{})
	productSet := make(map[string]struct{})
	lookup := make(map[string]map[string]decimal.Decimal, len(rows))

	for _, row := range rows {
		carrierSet[row.Carrier] = struct{}{}
		productSet[row.Product] = struct{}{}

		byCarrier, ok := lookup[row.Product]
		if !ok {
			byCarrier = make(map[string]decimal.Decimal, 4)
			lookup[row.Product] = byCarrier
		}
		byCarrier[row.Carrier] = row.Quantity
	}

	carriers := sortedKeys(carrierSet)
	products := sortedKeys(productSet)

	columnTotals := make([]decimal.Decimal, len(carriers))
	pivotRows := make([]PivotRow, 0, len(products))
	grandTotal := decimal.Zero

	for _, product := range products {
		cells := make([]Cell, len(carriers))
		rowTotal := decimal.Zero

		for i, carrier := range carriers {
			quantity, present := lookup[product][carrier]
			if present && quantity.IsPositive() {
				cells[i] = Cell{Quantity: quantity}
				rowTotal = rowTotal.Add(quantity)
				columnTotals[i] = columnTotals[i].Add(quantity)
			} else {
				cells[i] = Cell{Blank: true}
			}
		}

		pivotRows = append(pivotRows, PivotRow{
			Product: product,
			Cells:   cells,
			Total:   rowTotal,
		})
		grandTotal = grandTotal.Add(rowTotal)
	}

	return &PivotTable{
		Carriers:     carriers,
		Rows:         pivotRows,
		ColumnTotals: columnTotals,
		GrandTotal:   grandTotal,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
