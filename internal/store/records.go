package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wmsapi/internal/report"
)

// Sums are selected as text and parsed into decimals so numeric columns
// of any precision survive the round trip without float conversion.
const aggregateQuery = "SELECT courier_name, product_name, SUM(quantity)::text FROM shipment_records"

// RecordStore aggregates shipment records out of Postgres. All methods are
// safe for concurrent use; the pool handles connection lifecycle.
type RecordStore struct {
	pool *pgxpool.Pool
}

// NewRecordStore wraps an existing connection pool. The store does not own
// the pool; closing it is the caller's job.
func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// AggregateByCarrier sums quantities per (carrier, product) pair matching
// the filter, ordered by carrier then product.
func (s *RecordStore) AggregateByCarrier(ctx context.Context, filter report.Filter) ([]report.AggregatedRow, error) {
	return s.aggregate(ctx, filter, " ORDER BY courier_name, product_name")
}

// AggregateByProduct returns the same sums ordered by product then carrier,
// the order the pivot builder consumes.
func (s *RecordStore) AggregateByProduct(ctx context.Context, filter report.Filter) ([]report.AggregatedRow, error) {
	return s.aggregate(ctx, filter, " ORDER BY product_name, courier_name")
}

func (s *RecordStore) aggregate(ctx context.Context, filter report.Filter, orderBy string) ([]report.AggregatedRow, error) {
	query, args := buildAggregateQuery(filter, orderBy)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shipment aggregates: %w", err)
	}
	defer rows.Close()

	aggregated := make([]report.AggregatedRow, 0)
	for rows.Next() {
		var row report.AggregatedRow
		var sum string
		if err := rows.Scan(&row.Carrier, &row.Product, &sum); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		row.Quantity, err = decimal.NewFromString(sum)
		if err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", sum, err)
		}
		aggregated = append(aggregated, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read shipment aggregates: %w", err)
	}

	return aggregated, nil
}

func buildAggregateQuery(filter report.Filter, orderBy string) (string, []any) {
	where, args := filter.Where()
	return aggregateQuery + where + " GROUP BY courier_name, product_name" + orderBy, args
}

// Ping verifies the database is reachable. Used by readiness checks.
func (s *RecordStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
