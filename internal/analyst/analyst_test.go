package analyst

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arkline/fxquant/consts"
	"github.com/arkline/fxquant/internal/models"
	"github.com/arkline/fxquant/internal/tools"
)

type fakeCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func staticCapability(raw string) tools.DataFunc {
	return func(ctx context.Context, args tools.Args) string {
		return raw
	}
}

func newTestAnalyst(t *testing.T, entries map[string]tools.DataFunc, completer *fakeCompleter) *QuantAnalyst {
	t.Helper()
	registry, err := tools.NewRegistry(entries)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return New(registry, completer)
}

func TestMissingCapabilityReturnsUnavailable(t *testing.T) {
	completer := &fakeCompleter{reply: "should not be used"}
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{}, completer)

	got := analyst.AnalyzeRiskMetrics(context.Background(), "EUR/USD", "1day")
	want := "⚠️ Capability unavailable: " + consts.CapRiskMetrics
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completion invoked %d times for a missing capability", len(completer.prompts))
	}
}

func TestInvalidPayloadSkipsCompletion(t *testing.T) {
	completer := &fakeCompleter{reply: "should not be used"}
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapRiskMetrics: staticCapability("this is not json"),
	}, completer)

	got := analyst.AnalyzeRiskMetrics(context.Background(), "EUR/USD", "1day")
	if !strings.HasPrefix(got, "⚠️ Analysis failed: invalid data payload:") {
		t.Errorf("unexpected result: %q", got)
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completion invoked %d times for an unparseable payload", len(completer.prompts))
	}
}

func TestRemoteErrorSkipsCompletion(t *testing.T) {
	completer := &fakeCompleter{reply: "should not be used"}
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapVolatility: staticCapability(models.ErrEnvelope("XAU/USD", "no data for XAU/USD")),
	}, completer)

	got := analyst.AnalyzeVolatility(context.Background(), "XAU/USD", "1day")
	if !strings.Contains(got, "no data for XAU/USD") {
		t.Errorf("result does not carry the envelope error: %q", got)
	}
	if !strings.HasPrefix(got, "⚠️") {
		t.Errorf("failure string not glyph-prefixed: %q", got)
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completion invoked %d times for a failed envelope", len(completer.prompts))
	}
}

func TestSuccessfulAnalysisCallsCompletionOnce(t *testing.T) {
	completer := &fakeCompleter{reply: "LLM verdict"}
	envelope := models.OkEnvelope("EUR/USD", map[string]any{
		"risk_metrics": map[string]any{
			"sharpe_ratio":      1.2,
			"max_drawdown":      -0.1,
			"annual_volatility": 0.1,
		},
	})
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapRiskMetrics: staticCapability(envelope),
	}, completer)

	got := analyst.AnalyzeRiskMetrics(context.Background(), "EUR/USD", "1day")
	if got != "LLM verdict" {
		t.Errorf("model output was modified: %q", got)
	}
	if len(completer.prompts) != 1 {
		t.Fatalf("completion invoked %d times, want 1", len(completer.prompts))
	}
	prompt := completer.prompts[0]
	for _, fragment := range []string{
		"senior quantitative analyst",
		"risk metrics for EUR/USD",
		"\"sharpe_ratio\": 1.2",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestSuccessDefaultsTrueWhenFlagAbsent(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapVolatility: staticCapability(`{"symbol":"EUR/USD","volatility_metrics":{"annual_volatility":0.08}}`),
	}, completer)

	got := analyst.AnalyzeVolatility(context.Background(), "EUR/USD", "")
	if got != "ok" {
		t.Errorf("got %q, want completion output", got)
	}
	if len(completer.prompts) != 1 {
		t.Errorf("completion invoked %d times, want 1", len(completer.prompts))
	}
}

func TestCompletionErrorDegradesToString(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("backend unreachable")}
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapRiskMetrics: staticCapability(models.OkEnvelope("EUR/USD", nil)),
	}, completer)

	got := analyst.AnalyzeRiskMetrics(context.Background(), "EUR/USD", "1day")
	if !strings.HasPrefix(got, "⚠️ Analysis failed:") || !strings.Contains(got, "backend unreachable") {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestPortfolioRiskFetchesEverySeries(t *testing.T) {
	var returnsCalls, correlationCalls int
	completer := &fakeCompleter{reply: "portfolio verdict"}
	analyst := newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapForexReturns: func(ctx context.Context, args tools.Args) string {
			returnsCalls++
			return models.OkEnvelope(args.String("symbol"), map[string]any{"returns": []float64{0.001, -0.002}})
		},
		consts.CapCorrelation: func(ctx context.Context, args tools.Args) string {
			correlationCalls++
			return models.OkEnvelope("", map[string]any{"correlation_matrix": map[string]any{}})
		},
	}, completer)

	got := analyst.AnalyzePortfolioRisk(context.Background(), []string{"EUR/USD", "USD/JPY"}, "1day")
	if got != "portfolio verdict" {
		t.Errorf("got %q", got)
	}
	if returnsCalls != 2 {
		t.Errorf("returns fetched %d times, want 2", returnsCalls)
	}
	if correlationCalls != 1 {
		t.Errorf("correlation fetched %d times, want 1", correlationCalls)
	}
	if len(completer.prompts) != 1 {
		t.Fatalf("completion invoked %d times, want 1", len(completer.prompts))
	}
	if !strings.Contains(completer.prompts[0], "EUR/USD returns") {
		t.Errorf("prompt missing labeled dataset:\n%s", completer.prompts[0])
	}
}

func TestComparisonSet(t *testing.T) {
	got := comparisonSet("EUR/USD")
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	seen := map[string]int{}
	for _, sym := range got {
		seen[sym]++
	}
	if seen["EUR/USD"] != 1 {
		t.Errorf("EUR/USD appears %d times: %v", seen["EUR/USD"], got)
	}

	got = comparisonSet("AUD/USD")
	want := []string{"AUD/USD", "EUR/USD", "GBP/USD"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func riskEnvelope(sharpe, drawdown, volatility float64) string {
	return models.OkEnvelope("EUR/USD", map[string]any{
		"risk_metrics": map[string]any{
			"sharpe_ratio":      sharpe,
			"max_drawdown":      drawdown,
			"annual_volatility": volatility,
		},
	})
}

func reportAnalyst(t *testing.T, riskData string) *QuantAnalyst {
	t.Helper()
	completer := &fakeCompleter{reply: "section text"}
	return newTestAnalyst(t, map[string]tools.DataFunc{
		consts.CapRiskMetrics: staticCapability(riskData),
		consts.CapVolatility:  staticCapability(models.OkEnvelope("EUR/USD", nil)),
		consts.CapCorrelation: staticCapability(models.OkEnvelope("", nil)),
	}, completer)
}

func TestReportRecommendationTiers(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"strong profile", riskEnvelope(1.2, -0.1, 0.1), "suitable for investment"},
		{"moderate sharpe", riskEnvelope(0.6, -0.3, 0.2), "Proceed with caution"},
		{"weak profile", riskEnvelope(0.3, -0.1, 0.1), "Avoid this pair"},
		{"deep drawdown", riskEnvelope(1.5, -0.4, 0.1), "Proceed with caution"},
		{"unreadable data", "garbage", "could not be evaluated"},
		{"remote failure", models.ErrEnvelope("EUR/USD", "fetch failed"), "could not be evaluated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyst := reportAnalyst(t, tt.data)
			report := analyst.CreateAnalysisReport(context.Background(), "EUR/USD", "1day", nil)
			if !strings.Contains(report, tt.want) {
				t.Errorf("report missing %q:\n%s", tt.want, report)
			}
		})
	}
}

func TestReportContainsRequestedSections(t *testing.T) {
	analyst := reportAnalyst(t, riskEnvelope(1.2, -0.1, 0.1))
	report := analyst.CreateAnalysisReport(context.Background(), "EUR/USD", "", nil)

	for _, heading := range []string{
		"# Quantitative Analysis Report: EUR/USD",
		"## Risk Analysis",
		"## Volatility Analysis",
		"## Correlation Analysis",
		"## Investment Recommendation",
	} {
		if !strings.Contains(report, heading) {
			t.Errorf("report missing %q", heading)
		}
	}
}

func TestReportSubsetSkipsOtherSections(t *testing.T) {
	analyst := reportAnalyst(t, riskEnvelope(0.3, -0.1, 0.1))
	report := analyst.CreateAnalysisReport(context.Background(), "EUR/USD", "1day", []string{consts.SectionRisk})

	if !strings.Contains(report, "## Risk Analysis") {
		t.Errorf("risk section missing:\n%s", report)
	}
	for _, heading := range []string{"## Volatility Analysis", "## Correlation Analysis"} {
		if strings.Contains(report, heading) {
			t.Errorf("unexpected section %q", heading)
		}
	}
}
