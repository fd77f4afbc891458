package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arkline/fxquant/internal/dataflows"
)

// WriteSeriesCSV dumps a bar series as CSV under dir/csv/<symbol>/ and
// returns the file path. Used by the export command so fetched data can be
// inspected outside the tool.
func WriteSeriesCSV(dir string, series *dataflows.Series) (string, error) {
	dirPath := filepath.Join(dir, "csv", sanitizeSymbol(series.Symbol))
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%d_bars_%s.csv",
		sanitizeSymbol(series.Symbol), series.Timeframe, len(series.Bars),
		time.Now().Format("20060102_150405"))
	path := filepath.Join(dirPath, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Symbol", "Date", "Open", "High", "Low", "Close"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for _, bar := range series.Bars {
		row := []string{
			bar.Symbol,
			bar.Date.Format("2006-01-02"),
			bar.Open.String(),
			bar.High.String(),
			bar.Low.String(),
			bar.Close.String(),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return "", err
	}
	return path, nil
}
