package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "existing file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "trades.csv")
				require.NoError(t, os.WriteFile(file, []byte("timestamp\n"), 0644))
				return file
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			err := validator.ValidateFile(tt.setupFunc(t))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateDatasetFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		return path
	}

	tests := []struct {
		name       string
		path       string
		wantFormat DatasetFormat
		wantErr    error
		errSubstr  string
	}{
		{name: "csv", path: write("prices.csv"), wantFormat: FormatCSV},
		{name: "upper case csv", path: write("PRICES.CSV"), wantFormat: FormatCSV},
		{name: "xlsx", path: write("trades.xlsx"), wantFormat: FormatXLSX},
		{name: "unsupported", path: write("trades.json"), wantErr: ErrUnsupportedFormat},
		{name: "excel temp file", path: write("~$trades.xlsx"), errSubstr: "temporary"},
		{name: "missing", path: filepath.Join(dir, "nope.csv"), errSubstr: "does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(nil)
			format, err := validator.ValidateDatasetFile(tt.path)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errSubstr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantFormat, format)
			}
		})
	}
}

func TestFileValidator_ValidateOutputFile(t *testing.T) {
	validator := NewFileValidator(slog.Default())

	t.Run("creates missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "nested", "result.csv")
		require.NoError(t, validator.ValidateOutputFile(path))

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		_, err = os.Stat(filepath.Join(filepath.Dir(path), ".write_test"))
		assert.True(t, os.IsNotExist(err), "probe file should be removed")
	})

	t.Run("rejects directory target", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "result.csv")
		require.NoError(t, os.Mkdir(target, 0755))

		err := validator.ValidateOutputFile(target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}
