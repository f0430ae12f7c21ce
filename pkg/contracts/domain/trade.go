package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents a single event of the timebase trade log
type Trade struct {
	Timestamp     time.Time       `json:"timestamp" csv:"timestamp"`
	TraderID      string          `json:"trader_id" csv:"traderId"`
	Symbol        string          `json:"symbol" csv:"symbol" validate:"required"`
	PriceCurrency string          `json:"price_currency" csv:"price_currency" validate:"required"`
	Price         decimal.Decimal `json:"trade_price" csv:"tradePrice"`
	Quantity      decimal.Decimal `json:"trade_quantity" csv:"tradeQuantity"`
	Side          TradeSide       `json:"side" csv:"side"`
}

// TradeSide represents the side of a trade
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// ParseTradeSide maps any capitalization of buy/sell onto the canonical side.
func ParseTradeSide(s string) (TradeSide, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TradeSideBuy):
		return TradeSideBuy, nil
	case string(TradeSideSell):
		return TradeSideSell, nil
	default:
		return "", fmt.Errorf("unknown trade side %q", s)
	}
}

// IsBuy reports whether the trade is a purchase
func (s TradeSide) IsBuy() bool {
	return s == TradeSideBuy
}

// IsSell reports whether the trade is a sale
func (s TradeSide) IsSell() bool {
	return s == TradeSideSell
}

// String returns the canonical side name
func (s TradeSide) String() string {
	return string(s)
}
