package analyst

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/arkline/fxquant/consts"
	"github.com/arkline/fxquant/internal/tools"
)

// Canned recommendation strings appended by CreateAnalysisReport. The
// thresholds live in recommendation below.
const (
	recommendSuitable = "✅ Recommendation: the risk-adjusted profile is strong. This pair is suitable for investment under normal position sizing."
	recommendCaution  = "⚖️ Recommendation: the risk-adjusted profile is moderate. Proceed with caution and reduced position sizing."
	recommendAvoid    = "❌ Recommendation: the risk-adjusted profile is weak. Avoid this pair until conditions improve."
	recommendUnknown  = "⚠️ Recommendation: risk data could not be evaluated. Treat this report as informational and verify the metrics manually before trading."
)

var sectionHeadings = map[string]string{
	consts.SectionRisk:        "Risk Analysis",
	consts.SectionVolatility:  "Volatility Analysis",
	consts.SectionCorrelation: "Correlation Analysis",
}

// CreateAnalysisReport assembles a multi-section report for one pair. The
// requested sections default to risk, volatility and correlation; each
// section runs the corresponding analysis operation and appends its text.
// A final recommendation is derived from a fresh risk fetch; if that data
// cannot be read the report closes with a cautionary note instead of
// failing.
func (a *QuantAnalyst) CreateAnalysisReport(ctx context.Context, symbol, timeframe string, sections []string) string {
	timeframe = orDefaultTimeframe(timeframe)
	if len(sections) == 0 {
		sections = []string{consts.SectionRisk, consts.SectionVolatility, consts.SectionCorrelation}
	}

	var report strings.Builder
	fmt.Fprintf(&report, "# Quantitative Analysis Report: %s\n", symbol)
	fmt.Fprintf(&report, "Timeframe: %s\n", timeframe)

	for _, section := range sections {
		heading, ok := sectionHeadings[section]
		if !ok {
			continue
		}
		var body string
		switch section {
		case consts.SectionRisk:
			body = a.AnalyzeRiskMetrics(ctx, symbol, timeframe)
		case consts.SectionVolatility:
			body = a.AnalyzeVolatility(ctx, symbol, timeframe)
		case consts.SectionCorrelation:
			body = a.AnalyzeCorrelation(ctx, comparisonSet(symbol), timeframe)
		}
		fmt.Fprintf(&report, "\n## %s\n%s\n", heading, body)
	}

	report.WriteString("\n## Investment Recommendation\n")
	report.WriteString(a.recommendation(ctx, symbol, timeframe))
	report.WriteString("\n")

	return report.String()
}

// comparisonSet picks the pairs the correlation section compares against.
// A symbol already in the default set is never duplicated; an outside
// symbol is combined with the first two defaults, keeping the list at
// three entries.
func comparisonSet(symbol string) []string {
	for _, def := range consts.DefaultComparisonSet {
		if def == symbol {
			out := make([]string, len(consts.DefaultComparisonSet))
			copy(out, consts.DefaultComparisonSet)
			return out
		}
	}
	return []string{symbol, consts.DefaultComparisonSet[0], consts.DefaultComparisonSet[1]}
}

// recommendation fetches the risk metrics once more and applies the fixed
// three-tier rule over Sharpe ratio, drawdown magnitude and annualized
// volatility.
func (a *QuantAnalyst) recommendation(ctx context.Context, symbol, timeframe string) string {
	raw := a.registry.Call(ctx, consts.CapRiskMetrics, tools.Args{
		"symbol":    symbol,
		"timeframe": timeframe,
		"periods":   consts.RiskLookback,
	})

	env := gjson.Parse(raw)
	if !gjson.Valid(raw) {
		return recommendUnknown
	}
	if field := env.Get("success"); field.Exists() && !field.Bool() {
		return recommendUnknown
	}
	metrics := env.Get("risk_metrics")
	if !metrics.Exists() {
		return recommendUnknown
	}

	sharpe := metrics.Get("sharpe_ratio").Float()
	drawdown := metrics.Get("max_drawdown").Float()
	volatility := metrics.Get("annual_volatility").Float()

	switch {
	case sharpe > 1.0 && math.Abs(drawdown) < 0.2 && volatility < 0.15:
		return recommendSuitable
	case sharpe > 0.5:
		return recommendCaution
	default:
		return recommendAvoid
	}
}
