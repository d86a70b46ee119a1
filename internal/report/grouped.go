package report

// GroupByCarrier reshapes aggregated rows into per-carrier pick list groups.
// Rows must arrive ordered by (carrier, product); carriers keep first-seen
// order and each carrier's products keep the aggregator's ordering. A
// carrier-keyed index makes this a single O(n) pass regardless of how many
// carriers appear. An empty input yields an empty, non-nil slice.
func GroupByCarrier(rows []AggregatedRow) []CarrierGroup {
	groups := make([]CarrierGroup, 0)
	index := make(map[string]int, 8)

	for _, row := range rows {
		i, ok := index[row.Carrier]
		if !ok {
			i = len(groups)
			index[row.Carrier] = i
			groups = append(groups, CarrierGroup{
				Carrier:  row.Carrier,
				Products: make([]ProductQuantity, 0, 4),
			})
		}
		groups[i].Products = append(groups[i].Products, ProductQuantity{
			Product:  row.Product,
			Quantity: row.Quantity,
		})
	}

	return groups
}
