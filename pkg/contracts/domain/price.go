package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// USD is the currency every statistic is normalized to
const USD = "USD"

// ClosingPrice is the USD value of a currency at the close of a calendar day
type ClosingPrice struct {
	Date     time.Time       `json:"date" csv:"Date"`
	Symbol   string          `json:"symbol" csv:"Product2Symbol"`
	USDValue decimal.Decimal `json:"usd_value" csv:"USDValueAtClose"`
}

// Dataset holds both source tables. It is populated once by the loader
// and must be treated as read-only afterwards.
type Dataset struct {
	Trades []Trade
	Prices []ClosingPrice
}

// DatasetSummary describes a loaded dataset for health and readiness reporting
type DatasetSummary struct {
	TradeCount int        `json:"trade_count"`
	PriceCount int        `json:"price_count"`
	FirstTrade *time.Time `json:"first_trade,omitempty"`
	LastTrade  *time.Time `json:"last_trade,omitempty"`
	Symbols    int        `json:"symbols"`
	Currencies int        `json:"currencies"`
}

// Summary computes the dataset summary
func (d *Dataset) Summary() DatasetSummary {
	summary := DatasetSummary{
		TradeCount: len(d.Trades),
		PriceCount: len(d.Prices),
	}

	symbols := make(map[string]struct{})
	currencies := make(map[string]struct{})
	for i := range d.Trades {
		ts := d.Trades[i].Timestamp
		if summary.FirstTrade == nil || ts.Before(*summary.FirstTrade) {
			first := ts
			summary.FirstTrade = &first
		}
		if summary.LastTrade == nil || ts.After(*summary.LastTrade) {
			last := ts
			summary.LastTrade = &last
		}
		symbols[d.Trades[i].Symbol] = struct{}{}
		currencies[d.Trades[i].PriceCurrency] = struct{}{}
	}
	summary.Symbols = len(symbols)
	summary.Currencies = len(currencies)

	return summary
}
