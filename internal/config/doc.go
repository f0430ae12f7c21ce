// Package config provides centralized configuration management for the
// trade statistics service.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//	1. Default values (Default)
//	2. YAML file: $TRADESTATS_CONFIG_FILE, config.yaml or configs/config.yaml
//	3. Environment variables (highest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TRADESTATS_<SECTION>_<KEY>:
//
//	TRADESTATS_SERVER_PORT=5000
//	TRADESTATS_SERVER_REQUEST_TIMEOUT=30s
//	TRADESTATS_DATA_TRADES_FILE=timebase_example.csv
//	TRADESTATS_DATA_PRICES_FILE=closing_prices.csv
//	TRADESTATS_LOGGING_LEVEL=debug
//	TRADESTATS_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests use config.Default() and adjust the fields they care about.
package config
