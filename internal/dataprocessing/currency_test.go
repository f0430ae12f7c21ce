package dataprocessing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

func TestResolveUSDPrice(t *testing.T) {
	from, to := day("2023-01-01"), day("2023-01-02")

	t.Run("USD is one for any table", func(t *testing.T) {
		tables := [][]domain.ClosingPrice{
			nil,
			{},
			{closing("2023-01-01", "USD", "3")},
			{closing("2023-01-01", "EUR", "1.1")},
		}
		for _, prices := range tables {
			got, err := ResolveUSDPrice(domain.USD, prices, from, to)
			require.NoError(t, err)
			assertDecimal(t, "1", got)
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		prices := []domain.ClosingPrice{
			closing("2023-01-01", "GBP", "1.2"),
			closing("2023-01-02", "EUR", "1.08"),
			closing("2023-01-01", "EUR", "1.07"),
		}
		got, err := ResolveUSDPrice("EUR", prices, from, to)
		require.NoError(t, err)
		assertDecimal(t, "1.08", got)
	})

	t.Run("missing currency", func(t *testing.T) {
		_, err := ResolveUSDPrice("JPY", []domain.ClosingPrice{closing("2023-01-01", "EUR", "1.07")}, from, to)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCurrencyLookup)

		var lookupErr *LookupError
		require.True(t, errors.As(err, &lookupErr))
		assert.Equal(t, "JPY", lookupErr.Currency)
		assert.Contains(t, err.Error(), "2023-01-01")
		assert.Contains(t, err.Error(), "2023-01-02")
	})
}
