package dataprocessing

import (
	"github.com/shopspring/decimal"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// SymbolAggregate is the per-symbol part of a statistics row
type SymbolAggregate struct {
	TradesNum     int
	TotalQuantity decimal.Decimal
	NetQuantity   decimal.Decimal
	Vwap          decimal.Decimal
	VwapUSD       decimal.Decimal
	ProfitUSD     decimal.Decimal
}

// AggregateSymbol computes the statistics of the trades of one symbol in one
// bucket, converting to USD with usdPrice.
//
// Vwap is Σ(quantity × price) divided by the number of trades, not by the
// traded quantity. Profit adds price × usdPrice for every sale and subtracts
// it for every purchase; quantity does not enter the profit figure.
func AggregateSymbol(trades []domain.Trade, usdPrice decimal.Decimal) (SymbolAggregate, error) {
	if len(trades) == 0 {
		return SymbolAggregate{}, ErrDivisionByZero
	}

	total := decimal.Zero
	net := decimal.Zero
	weighted := decimal.Zero
	profit := decimal.Zero

	for i := range trades {
		t := &trades[i]
		total = total.Add(t.Quantity)
		weighted = weighted.Add(t.Quantity.Mul(t.Price))

		priceUSD := t.Price.Mul(usdPrice)
		switch {
		case t.Side.IsBuy():
			net = net.Add(t.Quantity)
			profit = profit.Sub(priceUSD)
		case t.Side.IsSell():
			net = net.Sub(t.Quantity)
			profit = profit.Add(priceUSD)
		}
	}

	vwap := weighted.Div(decimal.NewFromInt(int64(len(trades))))

	return SymbolAggregate{
		TradesNum:     len(trades),
		TotalQuantity: total,
		NetQuantity:   net,
		Vwap:          vwap,
		VwapUSD:       vwap.Mul(usdPrice),
		ProfitUSD:     profit,
	}, nil
}
