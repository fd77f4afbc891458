package cli

import (
	"testing"
)

func TestParseSections(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"risk", []string{"risk"}, false},
		{"risk,volatility", []string{"risk", "volatility"}, false},
		{" Risk , CORRELATION ", []string{"risk", "correlation"}, false},
		{"risk,,volatility", []string{"risk", "volatility"}, false},
		{"risk,news", nil, true},
	}
	for _, tt := range tests {
		got, err := parseSections(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSections(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSections(%q): %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseSections(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseSections(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestNormalizePairs(t *testing.T) {
	got, err := normalizePairs([]string{"eurusd", "GBP/USD"})
	if err != nil {
		t.Fatalf("normalizePairs: %v", err)
	}
	want := []string{"EUR/USD", "GBP/USD"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := normalizePairs([]string{"notapair!"}); err == nil {
		t.Error("expected error for invalid pair")
	}
}

func TestAnalysisTitle(t *testing.T) {
	if got := analysisTitle("risk"); got != "Risk Analysis" {
		t.Errorf("got %q", got)
	}
	if got := analysisTitle("whatever"); got != "Analysis" {
		t.Errorf("got %q", got)
	}
}
