// Package services implements the business logic layer of the reporting
// service. It sits between the HTTP handlers and the store, so validation,
// aggregation shaping, and error transformation live in one testable place.
//
// Services follow these principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Error transformation at the boundary: store and exporter failures are
//	   logged with full detail and surfaced as ErrReportGeneration
package services
