// Package utils holds small filesystem helpers shared by the CLI.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ReportInfo summarizes one saved report file.
type ReportInfo struct {
	Path     string
	Symbol   string
	Saved    time.Time
	SizeByte int64
}

// SaveReport writes a markdown report under dir and returns the file path.
// The write goes through a temp file so a half-written report is never
// visible.
func SaveReport(dir, symbol, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.md", sanitizeSymbol(symbol), time.Now().Format("2006-01-02_150405"))
	path := filepath.Join(dir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// ListReports returns saved reports in dir, newest first. A missing
// directory yields an empty list.
func ListReports(dir string) ([]ReportInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var reports []ReportInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Path:     filepath.Join(dir, entry.Name()),
			Symbol:   symbolFromFilename(entry.Name()),
			Saved:    info.ModTime(),
			SizeByte: info.Size(),
		})
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Saved.After(reports[j].Saved)
	})
	return reports, nil
}

// sanitizeSymbol makes a pair name filesystem-safe: EUR/USD -> EUR_USD.
func sanitizeSymbol(symbol string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(symbol)
}

func symbolFromFilename(name string) string {
	base := strings.TrimSuffix(name, ".md")
	parts := strings.Split(base, "_")
	if len(parts) >= 2 {
		// EUR_USD_2026-08-29_150405 -> EUR/USD
		return parts[0] + "/" + parts[1]
	}
	return base
}
