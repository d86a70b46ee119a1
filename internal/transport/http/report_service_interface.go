package http

import (
	"context"

	"wmsapi/internal/exporter"
	"wmsapi/internal/report"
)

// ReportServiceInterface is the service surface the report handler depends on
type ReportServiceInterface interface {
	PickList(ctx context.Context, filter report.Filter) ([]report.CarrierGroup, error)
	PickListWorkbook(ctx context.Context, filter report.Filter) (*exporter.File, error)
}
