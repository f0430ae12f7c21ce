// Package app wires the trade statistics service together and manages its
// lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML file, TRADESTATS_* environment)
//	2. Initialize logging and OpenTelemetry
//	3. Load the trade log and closing price table
//	4. Create services and HTTP handlers
//	5. Build the chi router and the HTTP server
//
// A dataset that cannot be loaded aborts startup.
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// Server.ShutdownTimeout and flushes telemetry.
package app
