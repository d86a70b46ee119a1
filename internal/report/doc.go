// Package report builds the operator-facing pick list artifacts from
// aggregated shipment records: the carrier-grouped view served as JSON and
// the product-by-carrier pivot table rendered to a spreadsheet.
//
// The package is pure reshaping logic. Records are aggregated by the store
// layer; everything here is a stateless function of the aggregated rows, so
// concurrent report requests never share state.
package report
