package report

import "github.com/shopspring/decimal"

// AggregatedRow is the summed shipped quantity for one (carrier, product)
// pair over the filtered record set. Each pair appears at most once.
type AggregatedRow struct {
	Carrier  string
	Product  string
	Quantity decimal.Decimal
}

// ProductQuantity is a single line of a carrier's pick list
type ProductQuantity struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CarrierGroup holds the products an operator must pick for one carrier
type CarrierGroup struct {
	Carrier  string            `json:"carrier"`
	Products []ProductQuantity `json:"products"`
}

// Cell is one pivot matrix cell. Blank marks a pair with no positive
// aggregated quantity; it renders empty and counts as zero in totals.
type Cell struct {
	Quantity decimal.Decimal `json:"quantity"`
	Blank    bool            `json:"blank"`
}

// PivotRow is one product row of the pivot matrix, with one cell per
// carrier in the table's carrier order and the row's grand total.
type PivotRow struct {
	Product string          `json:"product"`
	Cells   []Cell          `json:"cells"`
	Total   decimal.Decimal `json:"total"`
}

// PivotTable is the dense product-by-carrier quantity matrix. Carriers and
// row products are sorted lexicographically. ColumnTotals holds the Total
// row values in carrier order; GrandTotal equals both the sum of all row
// totals and the sum of all column totals.
type PivotTable struct {
	Carriers     []string          `json:"carriers"`
	Rows         []PivotRow        `json:"rows"`
	ColumnTotals []decimal.Decimal `json:"column_totals"`
	GrandTotal   decimal.Decimal   `json:"grand_total"`
}
