// Package http contains the HTTP transport layer of the reporting service.
// Handlers parse and validate requests, delegate to services, and render
// responses; business logic stays out of this package. Errors surface as
// RFC 7807 problem details.
package http
