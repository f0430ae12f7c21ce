// Package http implements the HTTP handlers of the trade statistics service.
// Handlers are thin: they read the request, delegate to a service interface
// and write the response. Errors are rendered as RFC 7807 problem details
// through the shared errors.ErrorHandler.
//
// # Endpoints
//
//	GET /api               statistics table as a CSV attachment (result.csv)
//	GET /api/health        overall health
//	GET /api/health/ready  readiness, 503 until the dataset is loaded
//	GET /api/health/live   liveness with runtime details
//	GET /api/version       build information
//	GET /metrics           Prometheus scrape endpoint
//
// # Query parameters of GET /api
//
//	startTime     required, M/D/YY HH:MM (UTC)
//	endTime       required, M/D/YY HH:MM (UTC), after startTime
//	interval      required, day or hour
//	traderId      optional trader filter
//	symbol        optional symbol filter
//	baseCurrency  optional price currency filter
//
// Handlers depend on StatsServiceInterface and HealthServiceInterface so
// they can be tested with testify mocks.
package http
