package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SymbolStats is one output row: the statistics of one symbol in one bucket.
//
// Vwap is the quantity-weighted price sum divided by the number of trades,
// not by the traded quantity. Consumers of the report rely on that figure.
type SymbolStats struct {
	Date          time.Time       `json:"date"`
	IntervalStart time.Time       `json:"interval_start"`
	Symbol        string          `json:"symbol"`
	TradesNum     int             `json:"trades_num"`
	TotalQuantity decimal.Decimal `json:"total_quantity_traded"`
	NetQuantity   decimal.Decimal `json:"net_quantity_traded"`
	Vwap          decimal.Decimal `json:"vwap"`
	VwapUSD       decimal.Decimal `json:"vwap_usd"`
	ProfitUSD     decimal.Decimal `json:"profit_usd"`
}

// StatsColumns is the fixed column order of the statistics table
var StatsColumns = []string{
	"date",
	"interval_start",
	"symbol",
	"trades_num",
	"total_quantity_traded",
	"net_quantity_traded",
	"Vwap",
	"Vwap_USD",
	"profit_USD",
}
