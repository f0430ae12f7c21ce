package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// TracerName is the instrumentation name of the statistics pipeline
const TracerName = "tradestats.pipeline"

// Pipeline computes per-symbol statistics for every bucket of a query.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewPipeline creates a new statistics pipeline
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger: logger.With(slog.String("component", "stats_pipeline")),
		tracer: otel.Tracer(TracerName),
	}
}

// Run filters the dataset by the query, splits the filtered trades into
// buckets and aggregates every symbol of every bucket.
//
// Rows follow bucket order and, within a bucket, the order in which symbols
// first appear in the trade log. An empty slice returns ErrEmptyResult.
// A currency without a closing price aborts the run with a *LookupError.
func (p *Pipeline) Run(ctx context.Context, dataset *domain.Dataset, q domain.Query) ([]domain.SymbolStats, error) {
	ctx, span := p.tracer.Start(ctx, "stats.run",
		trace.WithAttributes(
			attribute.String("query.interval", string(q.Interval)),
			attribute.String("query.start", q.StartTime.Format(time.RFC3339)),
			attribute.String("query.end", q.EndTime.Format(time.RFC3339)),
		))
	defer span.End()

	trades, prices, err := FilterSlice(dataset, q)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			span.SetAttributes(attribute.Bool("stats.empty", true))
		}
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("stats.filtered_trades", len(trades)),
		attribute.Int("stats.filtered_prices", len(prices)),
	)

	boundaries, err := GenerateBoundaries(trades, q.Interval)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	order := timeOrder(trades)
	cursor := 0

	var rows []domain.SymbolStats
	for _, bucket := range Buckets(boundaries) {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return nil, err
		}

		first := cursor
		for cursor < len(order) && bucket.Contains(trades[order[cursor]].Timestamp) {
			cursor++
		}
		if cursor == first {
			continue
		}

		bucketRows, err := p.aggregateBucket(inputOrder(trades, order[first:cursor]), prices, bucket)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.logger.WarnContext(ctx, "stats run aborted",
				slog.Time("bucket_start", bucket.Start),
				slog.String("error", err.Error()))
			return nil, err
		}
		rows = append(rows, bucketRows...)
	}

	span.SetAttributes(attribute.Int("stats.rows", len(rows)))
	p.logger.DebugContext(ctx, "stats run completed",
		slog.Int("buckets", len(boundaries)-1),
		slog.Int("rows", len(rows)))

	return rows, nil
}

// timeOrder returns the positions of trades sorted by timestamp. Equal
// timestamps keep their input order.
func timeOrder(trades []domain.Trade) []int {
	order := make([]int, len(trades))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return trades[a].Timestamp.Compare(trades[b].Timestamp)
	})
	return order
}

// inputOrder returns the trades at the given positions in input order
func inputOrder(trades []domain.Trade, positions []int) []domain.Trade {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)

	out := make([]domain.Trade, len(sorted))
	for i, pos := range sorted {
		out[i] = trades[pos]
	}
	return out
}

// aggregateBucket produces the rows of one bucket from the trades inside it,
// given in input order.
func (p *Pipeline) aggregateBucket(bucketTrades []domain.Trade, prices []domain.ClosingPrice, bucket domain.Bucket) ([]domain.SymbolStats, error) {
	bucketPrices := FilterPrices(prices, bucket.Start, bucket.End)

	symbols, bySymbol := groupBySymbol(bucketTrades)

	rows := make([]domain.SymbolStats, 0, len(symbols))
	for _, symbol := range symbols {
		symbolTrades := bySymbol[symbol]

		usdPrice, err := ResolveUSDPrice(symbolTrades[0].PriceCurrency, bucketPrices,
			truncateDay(bucket.Start), truncateDay(bucket.End))
		if err != nil {
			return nil, err
		}

		agg, err := AggregateSymbol(symbolTrades, usdPrice)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s at %s: %w", symbol, bucket.Start.Format(time.DateTime), err)
		}

		rows = append(rows, domain.SymbolStats{
			Date:          truncateDay(bucket.Start),
			IntervalStart: bucket.Start,
			Symbol:        symbol,
			TradesNum:     agg.TradesNum,
			TotalQuantity: agg.TotalQuantity,
			NetQuantity:   agg.NetQuantity,
			Vwap:          agg.Vwap,
			VwapUSD:       agg.VwapUSD,
			ProfitUSD:     agg.ProfitUSD,
		})
	}

	return rows, nil
}

// groupBySymbol returns the distinct symbols in first-occurrence order and
// the trades of each symbol in input order.
func groupBySymbol(trades []domain.Trade) ([]string, map[string][]domain.Trade) {
	var order []string
	groups := make(map[string][]domain.Trade)
	for i := range trades {
		s := trades[i].Symbol
		if _, ok := groups[s]; !ok {
			order = append(order, s)
		}
		groups[s] = append(groups[s], trades[i])
	}
	return order, groups
}
