package dataprocessing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		panic(err)
	}
	return t
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func trade(at, trader, symbol, currency, price, qty string, side domain.TradeSide) domain.Trade {
	return domain.Trade{
		Timestamp:     ts(at),
		TraderID:      trader,
		Symbol:        symbol,
		PriceCurrency: currency,
		Price:         decimal.RequireFromString(price),
		Quantity:      decimal.RequireFromString(qty),
		Side:          side,
	}
}

func closing(date, symbol, value string) domain.ClosingPrice {
	return domain.ClosingPrice{
		Date:     day(date),
		Symbol:   symbol,
		USDValue: decimal.RequireFromString(value),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}
