package utils

import (
	"os"
	"strings"
	"testing"
)

func TestSaveReportRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveReport(dir, "EUR/USD", "# Report\nbody\n")
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if strings.Contains(path, "/USD_") {
		t.Errorf("symbol not sanitized in filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if string(data) != "# Report\nbody\n" {
		t.Errorf("content mismatch: %q", data)
	}

	reports, err := ListReports(dir)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Symbol != "EUR/USD" {
		t.Errorf("symbol = %q, want EUR/USD", reports[0].Symbol)
	}
}

func TestListReportsMissingDir(t *testing.T) {
	reports, err := ListReports(t.TempDir() + "/nope")
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports, want 0", len(reports))
	}
}
