package services

import "errors"

// Service errors
var (
	// ErrReportGeneration is the only error the report service surfaces for
	// store or exporter failures. The underlying cause goes to the log, not
	// the caller.
	ErrReportGeneration = errors.New("report generation failed")
)
