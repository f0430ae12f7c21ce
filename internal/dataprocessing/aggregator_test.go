package dataprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

func TestAggregateSymbol(t *testing.T) {
	tests := []struct {
		name       string
		trades     []domain.Trade
		usd        string
		wantNum    int
		wantTotal  string
		wantNet    string
		wantVwap   string
		wantVwapUS string
		wantProfit string
	}{
		{
			name: "single purchase",
			trades: []domain.Trade{
				trade("2023-01-01 10:00:00", "t", "S", "USD", "100", "10", domain.TradeSideBuy),
			},
			usd:     "1",
			wantNum: 1, wantTotal: "10", wantNet: "10",
			wantVwap: "1000", wantVwapUS: "1000", wantProfit: "-100",
		},
		{
			name: "buy and sell cancel out",
			trades: []domain.Trade{
				trade("2023-01-01 10:00:00", "t", "S", "USD", "10", "5", domain.TradeSideBuy),
				trade("2023-01-01 10:30:00", "t", "S", "USD", "20", "5", domain.TradeSideSell),
			},
			usd:     "1",
			wantNum: 2, wantTotal: "10", wantNet: "0",
			wantVwap: "75", wantVwapUS: "75", wantProfit: "10",
		},
		{
			name: "converted to USD",
			trades: []domain.Trade{
				trade("2023-01-01 10:00:00", "t", "S", "EUR", "2", "3", domain.TradeSideSell),
				trade("2023-01-01 10:10:00", "t", "S", "EUR", "4", "1", domain.TradeSideSell),
			},
			usd:     "1.5",
			wantNum: 2, wantTotal: "4", wantNet: "-4",
			wantVwap: "5", wantVwapUS: "7.5", wantProfit: "9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AggregateSymbol(tt.trades, decimal.RequireFromString(tt.usd))
			require.NoError(t, err)

			assert.Equal(t, tt.wantNum, got.TradesNum)
			assertDecimal(t, tt.wantTotal, got.TotalQuantity, "total")
			assertDecimal(t, tt.wantNet, got.NetQuantity, "net")
			assertDecimal(t, tt.wantVwap, got.Vwap, "vwap")
			assertDecimal(t, tt.wantVwapUS, got.VwapUSD, "vwap usd")
			assertDecimal(t, tt.wantProfit, got.ProfitUSD, "profit")
		})
	}
}

func TestAggregateSymbol_VwapDividesByTradeCount(t *testing.T) {
	trades := []domain.Trade{
		trade("2023-01-01 10:00:00", "t", "S", "USD", "10", "1", domain.TradeSideBuy),
		trade("2023-01-01 10:01:00", "t", "S", "USD", "10", "3", domain.TradeSideBuy),
	}
	got, err := AggregateSymbol(trades, decimal.NewFromInt(1))
	require.NoError(t, err)

	// (1*10 + 3*10) / 2 trades, not / 4 units
	assertDecimal(t, "20", got.Vwap)
}

func TestAggregateSymbol_NoTrades(t *testing.T) {
	_, err := AggregateSymbol(nil, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestAggregateSymbol_TotalBoundsNet(t *testing.T) {
	tests := []struct {
		name      string
		sides     []domain.TradeSide
		wantEqual bool
	}{
		{name: "all buys", sides: []domain.TradeSide{domain.TradeSideBuy, domain.TradeSideBuy, domain.TradeSideBuy}, wantEqual: true},
		{name: "all sells", sides: []domain.TradeSide{domain.TradeSideSell, domain.TradeSideSell}, wantEqual: true},
		{name: "mixed", sides: []domain.TradeSide{domain.TradeSideBuy, domain.TradeSideSell, domain.TradeSideBuy}, wantEqual: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trades []domain.Trade
			for i, side := range tt.sides {
				qty := decimal.NewFromInt(int64(i + 1)).String()
				trades = append(trades, trade("2023-01-01 10:00:00", "t", "S", "USD", "1", qty, side))
			}
			got, err := AggregateSymbol(trades, decimal.NewFromInt(1))
			require.NoError(t, err)

			assert.True(t, got.TotalQuantity.GreaterThanOrEqual(got.NetQuantity.Abs()))
			assert.Equal(t, tt.wantEqual, got.TotalQuantity.Equal(got.NetQuantity.Abs()))
		})
	}
}
