package services

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonKorobenko/test-task/internal/dataprocessing"
	"github.com/antonKorobenko/test-task/internal/exporter"
	"github.com/antonKorobenko/test-task/internal/shared/testutil"
	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

const sampleHeader = "date,interval_start,symbol,trades_num,total_quantity_traded,net_quantity_traded,Vwap,Vwap_USD,profit_USD"

var sampleDayReport = []string{
	sampleHeader,
	"2024-01-01,2024-01-01 00:00:00,BTC-EUR,2,3.00000000,1.00000000,155.00000000,170.50000000,11.00000000",
	"2024-01-01,2024-01-01 00:00:00,ETH-USD,1,4.00000000,4.00000000,200.00000000,200.00000000,-50.00000000",
	"2024-01-02,2024-01-02 00:00:00,BTC-EUR,1,3.00000000,-3.00000000,360.00000000,432.00000000,144.00000000",
}

func dayQuery() url.Values {
	return url.Values{
		"startTime": {"01/01/24 00:00"},
		"endTime":   {"01/03/24 00:00"},
		"interval":  {"day"},
	}
}

func newLoadedService(t *testing.T) *StatsService {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	svc := NewStatsService(exporter.NewCSVWriter(t.TempDir(), logger), nil, logger)

	tradesPath, pricesPath := testutil.WriteSampleDataset(t)
	require.NoError(t, svc.Load(context.Background(), tradesPath, pricesPath))
	return svc
}

func TestStatsService_Report(t *testing.T) {
	svc := newLoadedService(t)

	body, err := svc.Report(context.Background(), dayQuery())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	assert.Equal(t, sampleDayReport, lines)
}

func TestStatsService_ReportFilters(t *testing.T) {
	svc := newLoadedService(t)

	values := dayQuery()
	values.Set("traderId", "T2")
	values.Set("symbol", "BTC-EUR")
	values.Set("baseCurrency", "EUR")

	body, err := svc.Report(context.Background(), values)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-01,2024-01-01 00:00:00,BTC-EUR,1,"))
	assert.True(t, strings.HasPrefix(lines[2], "2024-01-02,2024-01-02 00:00:00,BTC-EUR,1,"))
}

func TestStatsService_EmptyResult(t *testing.T) {
	svc := newLoadedService(t)

	values := dayQuery()
	values.Set("symbol", "DOGE-USD")

	body, err := svc.Report(context.Background(), values)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestStatsService_Errors(t *testing.T) {
	svc := newLoadedService(t)

	t.Run("malformed time", func(t *testing.T) {
		values := dayQuery()
		values.Set("startTime", "2024-01-01")

		_, err := svc.Report(context.Background(), values)
		var parseErr *dataprocessing.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("invalid interval", func(t *testing.T) {
		values := dayQuery()
		values.Set("interval", "week")

		_, err := svc.Report(context.Background(), values)
		assert.ErrorIs(t, err, dataprocessing.ErrInvalidQuery)
	})

	t.Run("missing closing price", func(t *testing.T) {
		trades, err := dataprocessing.ParseTradesCSV(
			strings.NewReader(testutil.TradesHeader+"\n"+strings.Join(testutil.SampleTrades, "\n")), "trades.csv")
		require.NoError(t, err)
		prices, err := dataprocessing.ParsePricesCSV(
			strings.NewReader(testutil.PricesHeader+"\n2024-01-01,GBP,1.3\n"), "prices.csv")
		require.NoError(t, err)

		other := newLoadedService(t)
		other.SetDataset(&domain.Dataset{Trades: trades, Prices: prices})

		_, err = other.Report(context.Background(), dayQuery())
		var lookupErr *dataprocessing.LookupError
		require.ErrorAs(t, err, &lookupErr)
		assert.Equal(t, "EUR", lookupErr.Currency)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Report(ctx, dayQuery())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStatsService_NotLoaded(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := NewStatsService(exporter.NewCSVWriter("", logger), nil, logger)

	_, err := svc.Report(context.Background(), dayQuery())
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)

	_, _, ok := svc.Summary()
	assert.False(t, ok)
}

func TestStatsService_LoadFailure(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := NewStatsService(exporter.NewCSVWriter("", logger), nil, logger)

	dir := t.TempDir()
	trades := testutil.WriteFile(t, dir, "trades.csv", "timestamp,symbol", []string{"2024-01-01,BTC"})
	prices := testutil.WriteFile(t, dir, "prices.csv", testutil.PricesHeader, testutil.SamplePrices)

	err := svc.Load(context.Background(), trades, prices)
	assert.ErrorIs(t, err, dataprocessing.ErrSchema)

	_, _, ok := svc.Summary()
	assert.False(t, ok)
}

func TestStatsService_Summary(t *testing.T) {
	svc := newLoadedService(t)

	summary, loadedAt, ok := svc.Summary()
	require.True(t, ok)
	assert.False(t, loadedAt.IsZero())
	assert.Equal(t, 4, summary.TradeCount)
	assert.Equal(t, 2, summary.PriceCount)
	assert.Equal(t, 2, summary.Symbols)
}

func TestStatsService_ExportReport(t *testing.T) {
	svc := newLoadedService(t)
	out := filepath.Join(t.TempDir(), "result.csv")

	rows, err := svc.ExportReport(context.Background(), dayQuery(), out, false)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(sampleDayReport, "\n")+"\n", string(content))
}
