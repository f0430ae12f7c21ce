// Package exporter provides CSV export functionality for trading statistics.
//
// CSVWriter: core CSV writing with support for headers, streaming and a
// UTF-8 BOM for Excel compatibility.
//
// StatsExporter: serializes []domain.SymbolStats in the fixed column order
// date, interval_start, symbol, trades_num, total_quantity_traded,
// net_quantity_traded, Vwap, Vwap_USD, profit_USD. Decimal columns always
// carry eight fractional digits. An empty result serializes to zero bytes.
//
// Example usage:
//
//	statsExporter := exporter.NewStatsExporter(exporter.NewCSVWriter("reports", logger), logger)
//
//	// Stream to an HTTP response
//	err := statsExporter.WriteStats(w, rows)
//
//	// Or write a file for offline use
//	err = statsExporter.ExportStats("result.csv", rows, true)
package exporter
