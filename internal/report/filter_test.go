package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Validate(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filter
		wantField string
	}{
		{
			name:   "empty filter is valid",
			filter: Filter{},
		},
		{
			name: "full valid filter",
			filter: Filter{
				StoreName:   "Main Warehouse",
				CourierName: "Ekart",
				DateFrom:    "2024-01-01",
				DateTo:      "2024-01-31",
			},
		},
		{
			name:      "malformed date_from",
			filter:    Filter{DateFrom: "01/15/2024"},
			wantField: "date_from",
		},
		{
			name:      "malformed date_to",
			filter:    Filter{DateTo: "not-a-date"},
			wantField: "date_to",
		},
		{
			name:      "overlong store name",
			filter:    Filter{StoreName: string(make([]byte, 201))},
			wantField: "store_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ferr *FilterError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tt.wantField, ferr.Field)
		})
	}
}

func TestFilter_Where_Empty(t *testing.T) {
	clause, args := Filter{}.Where()
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestFilter_Where_AllFields(t *testing.T) {
	f := Filter{
		StoreName:   "Main Warehouse",
		CourierName: "Ekart",
		DateFrom:    "2024-01-01",
		DateTo:      "2024-01-15",
	}

	clause, args := f.Where()

	assert.Equal(t,
		" WHERE store_name = $1 AND courier_name = $2 AND order_date >= $3 AND order_date <= $4",
		clause)
	require.Len(t, args, 4)
	assert.Equal(t, "Main Warehouse", args[0])
	assert.Equal(t, "Ekart", args[1])

	from, ok := args[2].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
}

func TestFilter_Where_SingleField(t *testing.T) {
	clause, args := Filter{CourierName: "Delhivery"}.Where()
	assert.Equal(t, " WHERE courier_name = $1", clause)
	assert.Equal(t, []any{"Delhivery"}, args)
}

func TestFilter_Where_NeverInterpolatesValues(t *testing.T) {
	f := Filter{StoreName: "'; DROP TABLE shipment_records; --"}
	clause, args := f.Where()

	assert.NotContains(t, clause, "DROP TABLE")
	assert.Equal(t, []any{"'; DROP TABLE shipment_records; --"}, args)
}

func TestFilter_DateToInclusiveThroughEndOfDay(t *testing.T) {
	clause, args := Filter{DateTo: "2024-01-15"}.Where()
	assert.Equal(t, " WHERE order_date <= $1", clause)
	require.Len(t, args, 1)

	bound, ok := args[0].(time.Time)
	require.True(t, ok)

	included := time.Date(2024, 1, 15, 23, 59, 59, 999_000_000, time.UTC)
	excluded := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	assert.False(t, included.After(bound), "end of day must satisfy the bound")
	assert.True(t, excluded.After(bound), "next midnight must not satisfy the bound")
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{StoreName: "x"}.IsZero())
}
