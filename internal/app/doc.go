// Package app wires the reporting service together: configuration, logging,
// telemetry, the database pool, services, routing, and the HTTP server
// lifecycle. main stays thin; everything testable lives here.
package app
