package dataprocessing

import (
	"time"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// TradeFilter holds the optional predicates applied to the trade log.
// Empty fields match every trade.
type TradeFilter struct {
	TraderID     string
	Symbol       string
	BaseCurrency string
}

// Match reports whether the trade satisfies every non-empty predicate
func (f TradeFilter) Match(t *domain.Trade) bool {
	if f.TraderID != "" && t.TraderID != f.TraderID {
		return false
	}
	if f.Symbol != "" && t.Symbol != f.Symbol {
		return false
	}
	if f.BaseCurrency != "" && t.PriceCurrency != f.BaseCurrency {
		return false
	}
	return true
}

// FilterTrades returns the trades with a timestamp in [start, end) that match
// the filter. The input is never modified.
func FilterTrades(trades []domain.Trade, start, end time.Time, f TradeFilter) []domain.Trade {
	var out []domain.Trade
	for i := range trades {
		t := &trades[i]
		if t.Timestamp.Before(start) || !t.Timestamp.Before(end) {
			continue
		}
		if !f.Match(t) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// FilterPrices returns the price rows whose calendar date lies between the
// dates of start and end, both inclusive.
func FilterPrices(prices []domain.ClosingPrice, start, end time.Time) []domain.ClosingPrice {
	from, to := truncateDay(start), truncateDay(end)

	var out []domain.ClosingPrice
	for i := range prices {
		d := truncateDay(prices[i].Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, prices[i])
	}
	return out
}

// FilterSlice applies the query to both tables. It returns ErrEmptyResult when
// either filtered table is empty.
func FilterSlice(dataset *domain.Dataset, q domain.Query) ([]domain.Trade, []domain.ClosingPrice, error) {
	trades := FilterTrades(dataset.Trades, q.StartTime, q.EndTime, TradeFilter{
		TraderID:     q.TraderID,
		Symbol:       q.Symbol,
		BaseCurrency: q.BaseCurrency,
	})
	if len(trades) == 0 {
		return nil, nil, ErrEmptyResult
	}

	prices := FilterPrices(dataset.Prices, q.StartTime, q.EndTime)
	if len(prices) == 0 {
		return nil, nil, ErrEmptyResult
	}

	return trades, prices, nil
}
