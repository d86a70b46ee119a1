package services

import (
	"context"
	"log/slog"

	"wmsapi/internal/exporter"
	"wmsapi/internal/infrastructure"
	"wmsapi/internal/report"
)

// RecordAggregator is the store surface the report service depends on
type RecordAggregator interface {
	AggregateByCarrier(ctx context.Context, filter report.Filter) ([]report.AggregatedRow, error)
	AggregateByProduct(ctx context.Context, filter report.Filter) ([]report.AggregatedRow, error)
}

// ReportService builds pick-list views over aggregated shipment records
type ReportService struct {
	store   RecordAggregator
	logger  *slog.Logger
	metrics *infrastructure.ReportMetrics
}

// NewReportService creates a report service with injected dependencies.
// metrics may be nil; recording is then skipped.
func NewReportService(store RecordAggregator, logger *slog.Logger, metrics *infrastructure.ReportMetrics) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// PickList returns carrier-grouped product quantities for records matching
// the filter. An empty result is a valid report, not an error.
func (s *ReportService) PickList(ctx context.Context, filter report.Filter) ([]report.CarrierGroup, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.store.AggregateByCarrier(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "pick list aggregation failed",
			slog.String("error", err.Error()),
			slog.String("store_name", filter.StoreName),
			slog.String("courier_name", filter.CourierName))
		s.recordError(ctx)
		return nil, ErrReportGeneration
	}

	groups := report.GroupByCarrier(rows)

	s.logger.InfoContext(ctx, "pick list generated",
		slog.Int("carriers", len(groups)),
		slog.Int("rows", len(rows)))
	if s.metrics != nil {
		s.metrics.PickListsGenerated.Add(ctx, 1)
	}

	return groups, nil
}

// PickListWorkbook renders the carrier/product pivot as an xlsx download
func (s *ReportService) PickListWorkbook(ctx context.Context, filter report.Filter) (*exporter.File, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.store.AggregateByProduct(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "workbook aggregation failed",
			slog.String("error", err.Error()),
			slog.String("store_name", filter.StoreName),
			slog.String("courier_name", filter.CourierName))
		s.recordError(ctx)
		return nil, ErrReportGeneration
	}

	table := report.BuildPivot(rows)

	file, err := exporter.WritePickList(table)
	if err != nil {
		s.logger.ErrorContext(ctx, "workbook rendering failed",
			slog.String("error", err.Error()),
			slog.Int("rows", len(table.Rows)),
			slog.Int("carriers", len(table.Carriers)))
		s.recordError(ctx)
		return nil, ErrReportGeneration
	}

	s.logger.InfoContext(ctx, "workbook generated",
		slog.String("filename", file.Filename),
		slog.Int("bytes", len(file.Bytes)))
	if s.metrics != nil {
		s.metrics.ExportsGenerated.Add(ctx, 1)
	}

	return file, nil
}

func (s *ReportService) recordError(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.ReportErrors.Add(ctx, 1)
	}
}
