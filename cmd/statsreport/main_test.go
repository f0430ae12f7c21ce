package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonKorobenko/test-task/internal/shared/testutil"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected map[string]string
		absent   []string
	}{
		{
			name: "defaults",
			args: []string{"-start", "1/1/24 00:00", "-end", "1/2/24 00:00"},
			expected: map[string]string{
				"startTime": "1/1/24 00:00",
				"endTime":   "1/2/24 00:00",
				"interval":  "day",
			},
			absent: []string{"traderId", "symbol", "baseCurrency"},
		},
		{
			name: "all filters",
			args: []string{
				"-start", "1/1/24 00:00", "-end", "1/2/24 00:00", "-interval", "hour",
				"-trader", "T1", "-symbol", "BTC-EUR", "-currency", "EUR",
			},
			expected: map[string]string{
				"interval":     "hour",
				"traderId":     "T1",
				"symbol":       "BTC-EUR",
				"baseCurrency": "EUR",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			require.NoError(t, err)

			for key, value := range tt.expected {
				assert.Equal(t, value, opts.query.Get(key), key)
			}
			for _, key := range tt.absent {
				assert.False(t, opts.query.Has(key), key)
			}
		})
	}

	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "timebase_example.csv", opts.tradesFile)
	assert.Equal(t, "closing_prices.csv", opts.pricesFile)
	assert.Equal(t, "result.csv", opts.outFile)
	assert.False(t, opts.bom)
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestRun_WritesReport(t *testing.T) {
	tradesPath, pricesPath := testutil.WriteSampleDataset(t)
	outPath := filepath.Join(t.TempDir(), "result.csv")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-trades", tradesPath,
		"-prices", pricesPath,
		"-out", outPath,
		"-start", "1/1/24 00:00",
		"-end", "1/3/24 00:00",
		"-symbol", "BTC-EUR",
	}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "wrote 2 rows")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "date,interval_start,symbol"))
	assert.True(t, strings.HasPrefix(lines[2], "2024-01-02,2024-01-02 00:00:00,BTC-EUR,1,"))
}

func TestRun_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), []string{
		"-trades", filepath.Join(dir, "none.csv"),
		"-prices", filepath.Join(dir, "none.csv"),
		"-start", "1/1/24 00:00",
		"-end", "1/3/24 00:00",
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestRun_InvalidQuery(t *testing.T) {
	tradesPath, pricesPath := testutil.WriteSampleDataset(t)

	err := run(context.Background(), []string{
		"-trades", tradesPath,
		"-prices", pricesPath,
		"-out", filepath.Join(t.TempDir(), "result.csv"),
		"-start", "someday",
		"-end", "1/3/24 00:00",
	}, &bytes.Buffer{})
	assert.Error(t, err)
}
