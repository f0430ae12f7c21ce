package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/antonKorobenko/test-task/internal/config"
	"github.com/antonKorobenko/test-task/internal/exporter"
	"github.com/antonKorobenko/test-task/internal/infrastructure"
	"github.com/antonKorobenko/test-task/internal/services"
)

// options holds the parsed command line
type options struct {
	tradesFile string
	pricesFile string
	outFile    string
	bom        bool
	query      url.Values
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("Report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// parseFlags reads the command line into options. Query flags keep the
// exact spelling the HTTP API accepts.
func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("statsreport", flag.ContinueOnError)

	opts := &options{}
	fs.StringVar(&opts.tradesFile, "trades", "timebase_example.csv", "timebase trade log (.csv or .xlsx)")
	fs.StringVar(&opts.pricesFile, "prices", "closing_prices.csv", "closing price table (.csv or .xlsx)")
	fs.StringVar(&opts.outFile, "out", "result.csv", "output CSV file")
	fs.BoolVar(&opts.bom, "bom", false, "prefix the output with a UTF-8 BOM")
	start := fs.String("start", "", "start of the window, M/D/YY HH:MM (UTC)")
	end := fs.String("end", "", "end of the window, M/D/YY HH:MM (UTC)")
	interval := fs.String("interval", "day", "bucket size: day or hour")
	trader := fs.String("trader", "", "only trades of this trader")
	symbol := fs.String("symbol", "", "only trades of this symbol")
	currency := fs.String("currency", "", "only trades priced in this currency")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.query = url.Values{}
	opts.query.Set("startTime", *start)
	opts.query.Set("endTime", *end)
	opts.query.Set("interval", *interval)
	for key, value := range map[string]string{"traderId": *trader, "symbol": *symbol, "baseCurrency": *currency} {
		if value != "" {
			opts.query.Set(key, value)
		}
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)

	logger.InfoContext(ctx, "Starting statistics report",
		slog.String("trades_file", opts.tradesFile),
		slog.String("prices_file", opts.pricesFile),
		slog.String("output_file", opts.outFile),
		slog.String("interval", opts.query.Get("interval")))

	svc := services.NewStatsService(exporter.NewCSVWriter("", logger), nil, logger)
	if err := svc.Load(ctx, opts.tradesFile, opts.pricesFile); err != nil {
		return err
	}

	rows, err := svc.ExportReport(ctx, opts.query, opts.outFile, opts.bom)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %d rows to %s\n", rows, opts.outFile)
	return nil
}
