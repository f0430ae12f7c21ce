// Package dataprocessing turns the trade log and the closing price table into
// per-symbol trading statistics.
//
// # Data Flow
//
//	Loader → Dataset → FilterSlice → GenerateBoundaries → per bucket:
//	    group by symbol → ResolveUSDPrice → AggregateSymbol → []domain.SymbolStats
//
// The Loader reads both tables once, from CSV or from the first sheet of an
// XLSX workbook. The resulting Dataset is shared read-only by every run; the
// filters always return new slices.
//
// # Usage
//
//	dataset, err := dataprocessing.NewLoader(logger).Load(ctx, "timebase.csv", "closing_prices.csv")
//	if err != nil {
//	    return err
//	}
//	query, err := dataprocessing.NewQueryParser().Parse(r.URL.Query())
//	if err != nil {
//	    return err
//	}
//	rows, err := dataprocessing.NewPipeline(logger).Run(ctx, dataset, query)
//	if errors.Is(err, dataprocessing.ErrEmptyResult) {
//	    // nothing matched, write an empty report
//	}
//
// # Statistics
//
// For the trades of one symbol in one bucket:
//
//	trades_num             number of trades
//	total_quantity_traded  Σ quantity
//	net_quantity_traded    Σ +quantity for BUY, −quantity for SELL
//	Vwap                   Σ(quantity × price) / trades_num
//	Vwap_USD               Vwap × USD value of the trade currency
//	profit_USD             Σ +price × usd for SELL, −price × usd for BUY
//
// Vwap is divided by the trade count rather than the traded quantity. Reports
// built on this package depend on that definition.
//
// # Error Handling
//
// ErrEmptyResult is a success path. *ParseError, *LookupError and *SchemaError
// unwrap to ErrParse, ErrCurrencyLookup and ErrSchema.
package dataprocessing
