package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/antonKorobenko/test-task/internal/validation"
	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// Column names of the timebase trade log
const (
	ColTimestamp     = "timestamp"
	ColTraderID      = "traderId"
	ColSymbol        = "symbol"
	ColPriceCurrency = "price_currency"
	ColTradePrice    = "tradePrice"
	ColTradeQuantity = "tradeQuantity"
	ColSide          = "side"
)

// Column names of the closing price table
const (
	ColDate            = "Date"
	ColProduct2Symbol  = "Product2Symbol"
	ColUSDValueAtClose = "USDValueAtClose"
)

var (
	tradeColumns = []string{ColTimestamp, ColTraderID, ColSymbol, ColPriceCurrency, ColTradePrice, ColTradeQuantity, ColSide}
	priceColumns = []string{ColDate, ColProduct2Symbol, ColUSDValueAtClose}
)

const dateLayout = "2006-01-02"

// timestampLayouts are tried in order; values without a zone are UTC
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	dateLayout,
}

// Loader reads the trade log and the closing price table from CSV or XLSX files
type Loader struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewLoader creates a new dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger.With(slog.String("component", "dataset_loader")),
		validator: validation.NewFileValidator(logger),
	}
}

// Load reads both source tables concurrently and returns the assembled dataset.
// The dataset must not be mutated by callers.
func (l *Loader) Load(ctx context.Context, tradesPath, pricesPath string) (*domain.Dataset, error) {
	start := time.Now()
	dataset := &domain.Dataset{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		trades, err := l.LoadTrades(gctx, tradesPath)
		if err != nil {
			return err
		}
		dataset.Trades = trades
		return nil
	})
	g.Go(func() error {
		prices, err := l.LoadPrices(gctx, pricesPath)
		if err != nil {
			return err
		}
		dataset.Prices = prices
		return nil
	})
	if err := g.Wait(); err != nil {
		l.logger.ErrorContext(ctx, "dataset load failed", slog.String("error", err.Error()))
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("trades_file", tradesPath),
		slog.String("prices_file", pricesPath),
		slog.Int("trade_rows", len(dataset.Trades)),
		slog.Int("price_rows", len(dataset.Prices)),
		slog.Duration("duration", time.Since(start)))

	return dataset, nil
}

// LoadTrades reads the timebase trade log from a CSV or XLSX file
func (l *Loader) LoadTrades(ctx context.Context, path string) ([]domain.Trade, error) {
	rows, err := l.readRows(ctx, path)
	if err != nil {
		return nil, err
	}
	return tradesFromRows(rows, filepath.Base(path))
}

// LoadPrices reads the closing price table from a CSV or XLSX file
func (l *Loader) LoadPrices(ctx context.Context, path string) ([]domain.ClosingPrice, error) {
	rows, err := l.readRows(ctx, path)
	if err != nil {
		return nil, err
	}
	return pricesFromRows(rows, filepath.Base(path))
}

// ParseTradesCSV parses a timebase trade log from CSV text
func ParseTradesCSV(r io.Reader, source string) ([]domain.Trade, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, &SchemaError{Source: source, Err: err}
	}
	return tradesFromRows(rows, source)
}

// ParsePricesCSV parses a closing price table from CSV text
func ParsePricesCSV(r io.Reader, source string) ([]domain.ClosingPrice, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, &SchemaError{Source: source, Err: err}
	}
	return pricesFromRows(rows, source)
}

// readRows returns the raw rows of a CSV file or of the first sheet of an
// XLSX file. A cancelled context stops the read.
func (l *Loader) readRows(ctx context.Context, path string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := l.validator.ValidateDatasetFile(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if format == validation.FormatXLSX {
		rows, err = readExcel(path)
	} else {
		rows, err = readCSVFile(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func readCSVFile(ctx context.Context, path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := newCSVReader(file)
	var rows [][]string
	for {
		if len(rows)%csvCancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, &SchemaError{Source: filepath.Base(path), Err: err}
		}
		rows = append(rows, record)
	}
}

// csvCancelCheckRows is how often a streaming CSV read checks for cancellation
const csvCancelCheckRows = 4096

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

func readCSV(r io.Reader) ([][]string, error) {
	return newCSVReader(r).ReadAll()
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &SchemaError{Source: filepath.Base(path), Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// columnIndex maps every required column to its position in the header row
func columnIndex(rows [][]string, source string, required []string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Source: source, Column: required[0]}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, &SchemaError{Source: source, Column: col}
		}
	}
	return index, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func tradesFromRows(rows [][]string, source string) ([]domain.Trade, error) {
	idx, err := columnIndex(rows, source, tradeColumns)
	if err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rowErr := func(col string, err error) error {
			return &SchemaError{Source: source, Column: col, Row: n + 1, Err: err}
		}

		ts, err := parseTimestamp(cell(row, idx[ColTimestamp]))
		if err != nil {
			return nil, rowErr(ColTimestamp, err)
		}
		price, err := decimal.NewFromString(cell(row, idx[ColTradePrice]))
		if err != nil {
			return nil, rowErr(ColTradePrice, err)
		}
		quantity, err := decimal.NewFromString(cell(row, idx[ColTradeQuantity]))
		if err != nil {
			return nil, rowErr(ColTradeQuantity, err)
		}
		if quantity.IsNegative() {
			return nil, rowErr(ColTradeQuantity, fmt.Errorf("negative quantity %s", quantity))
		}
		side, err := domain.ParseTradeSide(cell(row, idx[ColSide]))
		if err != nil {
			return nil, rowErr(ColSide, err)
		}
		symbol := cell(row, idx[ColSymbol])
		if symbol == "" {
			return nil, rowErr(ColSymbol, fmt.Errorf("empty value"))
		}
		currency := cell(row, idx[ColPriceCurrency])
		if currency == "" {
			return nil, rowErr(ColPriceCurrency, fmt.Errorf("empty value"))
		}

		trades = append(trades, domain.Trade{
			Timestamp:     ts,
			TraderID:      cell(row, idx[ColTraderID]),
			Symbol:        symbol,
			PriceCurrency: currency,
			Price:         price,
			Quantity:      quantity,
			Side:          side,
		})
	}

	return trades, nil
}

func pricesFromRows(rows [][]string, source string) ([]domain.ClosingPrice, error) {
	idx, err := columnIndex(rows, source, priceColumns)
	if err != nil {
		return nil, err
	}

	prices := make([]domain.ClosingPrice, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		date, err := parseTimestamp(cell(row, idx[ColDate]))
		if err != nil {
			return nil, &SchemaError{Source: source, Column: ColDate, Row: n + 1, Err: err}
		}
		value, err := decimal.NewFromString(cell(row, idx[ColUSDValueAtClose]))
		if err != nil {
			return nil, &SchemaError{Source: source, Column: ColUSDValueAtClose, Row: n + 1, Err: err}
		}

		prices = append(prices, domain.ClosingPrice{
			Date:     truncateDay(date),
			Symbol:   cell(row, idx[ColProduct2Symbol]),
			USDValue: value,
		})
	}

	return prices, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
