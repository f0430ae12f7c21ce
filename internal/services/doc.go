// Package services implements the business logic layer between the HTTP
// handlers and the statistics pipeline.
//
// StatsService owns the dataset loaded at startup. It parses request
// parameters into a domain.Query, runs dataprocessing.Pipeline, encodes the
// rows with the exporter package and records run metrics. The dataset is
// installed with an atomic pointer swap and never mutated, so concurrent
// queries share it without locks.
//
// HealthService answers liveness and readiness probes. Readiness depends on
// a loaded dataset and on the source files still being present.
//
// Services receive their *slog.Logger by injection and tag it with a
// component attribute.
package services
