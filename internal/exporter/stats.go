package exporter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// StatsExporter serializes statistics rows as CSV
type StatsExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewStatsExporter creates a new statistics exporter
func NewStatsExporter(csvWriter *CSVWriter, logger *slog.Logger) *StatsExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if csvWriter == nil {
		csvWriter = NewCSVWriter("", logger)
	}
	return &StatsExporter{
		csvWriter: csvWriter,
		logger:    logger.With(slog.String("component", "stats_exporter")),
	}
}

// WriteStats writes the header and one record per row to out.
// An empty row set writes nothing at all.
func (e *StatsExporter) WriteStats(out io.Writer, rows []domain.SymbolStats) error {
	if len(rows) == 0 {
		return nil
	}

	stream, err := NewStreamWriter(writerOnly{out}, domain.StatsColumns)
	if err != nil {
		return err
	}
	for i := range rows {
		if err := stream.WriteRecord(StatsRecord(rows[i])); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	return stream.Close()
}

// Encode returns the CSV text of the rows
func (e *StatsExporter) Encode(rows []domain.SymbolStats) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WriteStats(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportStats writes the rows to a file. An empty row set produces an empty file.
func (e *StatsExporter) ExportStats(filePath string, rows []domain.SymbolStats, bom bool) error {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		records = append(records, StatsRecord(rows[i]))
	}

	options := WriteOptions{Records: records, BOMPrefix: bom}
	if len(rows) > 0 {
		options.Headers = domain.StatsColumns
	} else {
		options.BOMPrefix = false
	}

	if err := e.csvWriter.WriteCSV(filePath, options); err != nil {
		e.logger.Error("failed to export statistics",
			slog.String("file", filePath),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// StatsRecord converts a row into CSV fields in StatsColumns order
func StatsRecord(s domain.SymbolStats) []string {
	return []string{
		formatDate(s.Date),
		formatDateTime(s.IntervalStart),
		s.Symbol,
		formatInt(s.TradesNum),
		formatDecimal(s.TotalQuantity),
		formatDecimal(s.NetQuantity),
		formatDecimal(s.Vwap),
		formatDecimal(s.VwapUSD),
		formatDecimal(s.ProfitUSD),
	}
}

// writerOnly hides any Close method of a caller owned writer
type writerOnly struct {
	io.Writer
}
