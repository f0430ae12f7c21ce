package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSVFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name      string
		options   WriteOptions
		wantBOM   bool
		wantLines int
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"1", "2"}, {"3", "4"}},
			},
			wantLines: 3,
		},
		{
			name: "with BOM",
			options: WriteOptions{
				Headers:   []string{"a"},
				Records:   [][]string{{"1"}},
				BOMPrefix: true,
			},
			wantBOM:   true,
			wantLines: 2,
		},
		{
			name:      "nothing to write",
			options:   WriteOptions{},
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writer := NewCSVWriter(dir, nil)

			require.NoError(t, writer.WriteCSV("out/result.csv", tt.options))

			data := readCSVFile(t, filepath.Join(dir, "out", "result.csv"))
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(data, utf8BOM))

			records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
			require.NoError(t, err)
			assert.Len(t, records, tt.wantLines)
		})
	}
}

func TestCSVWriter_Append(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, nil)

	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{Headers: []string{"n"}, Records: [][]string{{"1"}}}))
	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{Headers: []string{"n"}, Records: [][]string{{"2"}}, Append: true, BOMPrefix: true}))

	assert.Equal(t, "n\n1\n2\n", string(readCSVFile(t, filepath.Join(dir, "log.csv"))))
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "abs.csv")
	writer := NewCSVWriter("/does/not/matter", nil)

	require.NoError(t, writer.WriteCSV(target, WriteOptions{Records: [][]string{{"x"}}}))
	assert.Equal(t, "x\n", string(readCSVFile(t, target)))
}

func TestStreamWriter(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		var buf bytes.Buffer
		stream, err := NewStreamWriter(&buf, []string{"symbol", "qty"})
		require.NoError(t, err)
		require.NoError(t, stream.WriteRecord([]string{"BTC,USD", "1"}))
		require.NoError(t, stream.Close())

		assert.Equal(t, "symbol,qty\n\"BTC,USD\",1\n", buf.String())
	})

	t.Run("file backed", func(t *testing.T) {
		dir := t.TempDir()
		stream, err := NewCSVWriter(dir, nil).CreateStreamWriter("stream.csv", []string{"h"}, true)
		require.NoError(t, err)
		for _, v := range []string{"1", "2", "3"} {
			require.NoError(t, stream.WriteRecord([]string{v}))
		}
		require.NoError(t, stream.Close())

		data := readCSVFile(t, filepath.Join(dir, "stream.csv"))
		assert.True(t, bytes.HasPrefix(data, utf8BOM))
		assert.Equal(t, "h\n1\n2\n3\n", string(bytes.TrimPrefix(data, utf8BOM)))
	})
}
