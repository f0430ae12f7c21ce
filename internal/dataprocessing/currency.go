package dataprocessing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// ResolveUSDPrice returns the USD value of one unit of currency. USD is always
// worth 1 and never consults the table. Otherwise the first matching row in
// table order wins. from and to only describe the window in a LookupError.
func ResolveUSDPrice(currency string, prices []domain.ClosingPrice, from, to time.Time) (decimal.Decimal, error) {
	if currency == domain.USD {
		return decimal.NewFromInt(1), nil
	}
	for i := range prices {
		if prices[i].Symbol == currency {
			return prices[i].USDValue, nil
		}
	}
	return decimal.Zero, &LookupError{Currency: currency, From: from, To: to}
}
