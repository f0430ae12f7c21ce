package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/antonKorobenko/test-task/internal/dataprocessing"
	"github.com/antonKorobenko/test-task/internal/exporter"
	"github.com/antonKorobenko/test-task/internal/infrastructure"
	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// StatsService owns the loaded dataset and answers statistics queries
// against it. The dataset is swapped atomically and never mutated, so
// queries need no locking.
type StatsService struct {
	loader   *dataprocessing.Loader
	parser   *dataprocessing.QueryParser
	pipeline *dataprocessing.Pipeline
	exporter *exporter.StatsExporter
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger

	dataset  atomic.Pointer[domain.Dataset]
	loadedAt atomic.Pointer[time.Time]
}

// NewStatsService creates a stats service. metrics may be nil.
func NewStatsService(csvWriter *exporter.CSVWriter, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{
		loader:   dataprocessing.NewLoader(logger),
		parser:   dataprocessing.NewQueryParser(),
		pipeline: dataprocessing.NewPipeline(logger),
		exporter: exporter.NewStatsExporter(csvWriter, logger),
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "stats_service"),
	}
}

// Load reads both source tables and makes them the active dataset
func (s *StatsService) Load(ctx context.Context, tradesPath, pricesPath string) error {
	dataset, err := s.loader.Load(ctx, tradesPath, pricesPath)
	if err != nil {
		infrastructure.RecordSystemError(ctx, s.metrics, "dataset_loader")
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	infrastructure.RecordDatasetLoaded(ctx, s.metrics, "trades", len(dataset.Trades))
	infrastructure.RecordDatasetLoaded(ctx, s.metrics, "prices", len(dataset.Prices))
	s.SetDataset(dataset)
	return nil
}

// SetDataset installs an already loaded dataset
func (s *StatsService) SetDataset(dataset *domain.Dataset) {
	now := time.Now()
	s.dataset.Store(dataset)
	s.loadedAt.Store(&now)
}

// Summary describes the active dataset. ok is false before a dataset is loaded.
func (s *StatsService) Summary() (summary domain.DatasetSummary, loadedAt time.Time, ok bool) {
	dataset := s.dataset.Load()
	if dataset == nil {
		return domain.DatasetSummary{}, time.Time{}, false
	}
	return dataset.Summary(), *s.loadedAt.Load(), true
}

// ParseQuery builds a validated query from request parameters
func (s *StatsService) ParseQuery(values url.Values) (domain.Query, error) {
	return s.parser.Parse(values)
}

// Compute runs the statistics pipeline. An empty slice yields no rows and no error.
func (s *StatsService) Compute(ctx context.Context, q domain.Query) ([]domain.SymbolStats, error) {
	dataset := s.dataset.Load()
	if dataset == nil {
		return nil, ErrDatasetNotLoaded
	}

	start := time.Now()
	rows, err := s.pipeline.Run(ctx, dataset, q)
	duration := time.Since(start)

	switch {
	case errors.Is(err, dataprocessing.ErrEmptyResult):
		infrastructure.RecordStatsRun(ctx, s.metrics, string(q.Interval), infrastructure.OutcomeEmpty, duration, 0)
		s.logger.InfoContext(ctx, "statistics query matched no trades",
			slog.String("interval", string(q.Interval)),
			slog.Time("start", q.StartTime),
			slog.Time("end", q.EndTime))
		return nil, nil
	case err != nil:
		infrastructure.RecordStatsRun(ctx, s.metrics, string(q.Interval), infrastructure.OutcomeError, duration, 0)
		return nil, err
	}

	infrastructure.RecordStatsRun(ctx, s.metrics, string(q.Interval), infrastructure.OutcomeSuccess, duration, len(rows))
	s.logger.InfoContext(ctx, "statistics computed",
		slog.String("interval", string(q.Interval)),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", duration))
	return rows, nil
}

// Report parses the request parameters, computes the statistics and returns
// them as CSV text. An empty slice returns an empty body.
func (s *StatsService) Report(ctx context.Context, values url.Values) ([]byte, error) {
	q, err := s.ParseQuery(values)
	if err != nil {
		return nil, err
	}
	rows, err := s.Compute(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.exporter.Encode(rows)
}

// ExportReport computes the statistics and writes them to a CSV file
func (s *StatsService) ExportReport(ctx context.Context, values url.Values, filePath string, bom bool) (int, error) {
	q, err := s.ParseQuery(values)
	if err != nil {
		return 0, err
	}
	rows, err := s.Compute(ctx, q)
	if err != nil {
		return 0, err
	}
	if err := s.exporter.ExportStats(filePath, rows, bom); err != nil {
		return 0, fmt.Errorf("failed to write report: %w", err)
	}
	return len(rows), nil
}
