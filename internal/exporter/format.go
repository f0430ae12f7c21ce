package exporter

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Output layouts of the statistics table
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// decimalPlaces is the fixed precision of every decimal column
const decimalPlaces = 8

// formatDecimal formats a decimal with exactly 8 fractional digits
func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(decimalPlaces)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
