package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TradesHeader is the header row of a timebase trade log
const TradesHeader = "timestamp,traderId,symbol,price_currency,tradePrice,tradeQuantity,side"

// PricesHeader is the header row of a closing price table
const PricesHeader = "Date,Product2Symbol,USDValueAtClose"

// SampleTrades is a small trade log spanning two days and two symbols.
// BTC-EUR trades are priced in EUR, ETH-USD trades in USD.
var SampleTrades = []string{
	"2024-01-01 10:15:00,T1,BTC-EUR,EUR,100,2,BUY",
	"2024-01-01 10:45:00,T2,BTC-EUR,EUR,110,1,SELL",
	"2024-01-01 11:05:00,T1,ETH-USD,USD,50,4,BUY",
	"2024-01-02 09:30:00,T2,BTC-EUR,EUR,120,3,SELL",
}

// SamplePrices carries a EUR closing price for both days of SampleTrades
var SamplePrices = []string{
	"2024-01-01,EUR,1.1",
	"2024-01-02,EUR,1.2",
}

// WriteFile writes a header and rows to name inside dir and returns the path
func WriteFile(t *testing.T, dir, name, header string, rows []string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := header + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// WriteSampleDataset writes SampleTrades and SamplePrices to a temporary
// directory and returns both paths.
func WriteSampleDataset(t *testing.T) (tradesPath, pricesPath string) {
	t.Helper()

	dir := t.TempDir()
	tradesPath = WriteFile(t, dir, "trades.csv", TradesHeader, SampleTrades)
	pricesPath = WriteFile(t, dir, "prices.csv", PricesHeader, SamplePrices)
	return tradesPath, pricesPath
}
