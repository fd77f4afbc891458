package quant

import (
	"math"
	"testing"

	"github.com/arkline/fxquant/internal/models"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestReturns(t *testing.T) {
	closes := []float64{100, 110, 99}
	returns, err := Returns(closes)
	if err != nil {
		t.Fatalf("Returns: %v", err)
	}
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if !almostEqual(returns[0], 0.10, 1e-9) {
		t.Errorf("returns[0] = %v, want 0.10", returns[0])
	}
	if !almostEqual(returns[1], -0.10, 1e-9) {
		t.Errorf("returns[1] = %v, want -0.10", returns[1])
	}
}

func TestReturnsRejectsShortAndZero(t *testing.T) {
	if _, err := Returns([]float64{100}); err == nil {
		t.Errorf("expected error for single close")
	}
	if _, err := Returns([]float64{100, 0, 110}); err == nil {
		t.Errorf("expected error for zero close")
	}
}

func TestMaxDrawdown(t *testing.T) {
	closes := []float64{100, 120, 90, 110, 80}
	// peak 120, trough 80 => -1/3
	got := MaxDrawdown(closes)
	if !almostEqual(got, 80.0/120.0-1, 1e-9) {
		t.Fatalf("MaxDrawdown = %v", got)
	}

	if got := MaxDrawdown([]float64{1, 2, 3}); got != 0 {
		t.Fatalf("monotone series drawdown = %v, want 0", got)
	}
}

func TestRiskMetricsFlatSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 1.10
	}
	m, err := RiskMetrics(closes)
	if err != nil {
		t.Fatalf("RiskMetrics: %v", err)
	}
	if m.AnnualVolatility != 0 || m.SharpeRatio != 0 || m.MaxDrawdown != 0 {
		t.Fatalf("flat series should have zero metrics: %+v", m)
	}
}

func TestRiskMetricsUptrend(t *testing.T) {
	closes := make([]float64, 0, 100)
	px := 1.0
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			px *= 1.01
		} else {
			px *= 0.999
		}
		closes = append(closes, px)
	}
	m, err := RiskMetrics(closes)
	if err != nil {
		t.Fatalf("RiskMetrics: %v", err)
	}
	if m.SharpeRatio <= 0 {
		t.Errorf("uptrend sharpe = %v, want > 0", m.SharpeRatio)
	}
	if m.AnnualVolatility <= 0 {
		t.Errorf("annual volatility = %v, want > 0", m.AnnualVolatility)
	}
	if m.MaxDrawdown > 0 || m.MaxDrawdown < -0.01 {
		t.Errorf("max drawdown = %v out of expected range", m.MaxDrawdown)
	}
	if m.VaR95 > 0 {
		t.Errorf("VaR95 = %v, want <= 0", m.VaR95)
	}
}

func TestPearson(t *testing.T) {
	x := []float64{0.01, -0.02, 0.03, -0.01, 0.02}
	y := []float64{0.02, -0.04, 0.06, -0.02, 0.04} // perfectly correlated

	corr, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("Pearson: %v", err)
	}
	if !almostEqual(corr, 1, 1e-9) {
		t.Fatalf("corr = %v, want 1", corr)
	}

	neg := make([]float64, len(x))
	for i, v := range x {
		neg[i] = -v
	}
	corr, err = Pearson(x, neg)
	if err != nil {
		t.Fatalf("Pearson: %v", err)
	}
	if !almostEqual(corr, -1, 1e-9) {
		t.Fatalf("corr = %v, want -1", corr)
	}
}

func TestPearsonAlignsOnTail(t *testing.T) {
	x := []float64{5, 5, 0.01, -0.02, 0.03}
	y := []float64{0.01, -0.02, 0.03}

	corr, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("Pearson: %v", err)
	}
	if !almostEqual(corr, 1, 1e-9) {
		t.Fatalf("tail-aligned corr = %v, want 1", corr)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	series := map[string][]float64{
		"EUR/USD": {0.01, -0.02, 0.03, -0.01},
		"GBP/USD": {0.02, -0.04, 0.06, -0.02},
	}
	matrix, err := CorrelationMatrix(series)
	if err != nil {
		t.Fatalf("CorrelationMatrix: %v", err)
	}
	if matrix["EUR/USD"]["EUR/USD"] != 1 {
		t.Errorf("diagonal should be 1")
	}
	if !almostEqual(matrix["EUR/USD"]["GBP/USD"], 1, 1e-9) {
		t.Errorf("off-diagonal = %v, want 1", matrix["EUR/USD"]["GBP/USD"])
	}

	if _, err := CorrelationMatrix(map[string][]float64{"EUR/USD": {0.01}}); err == nil {
		t.Errorf("expected error for single series")
	}
}

func TestATR(t *testing.T) {
	candles := make([]models.Candle, 0, 20)
	for i := 0; i < 20; i++ {
		candles = append(candles, models.Candle{
			High:  1.02,
			Low:   1.00,
			Close: 1.01,
		})
	}
	atr, err := ATR(candles, 14)
	if err != nil {
		t.Fatalf("ATR: %v", err)
	}
	if !almostEqual(atr, 0.02, 1e-9) {
		t.Fatalf("ATR = %v, want 0.02", atr)
	}

	if _, err := ATR(candles[:5], 14); err == nil {
		t.Fatalf("expected error for short series")
	}
}

func TestVolatilityMetrics(t *testing.T) {
	candles := make([]models.Candle, 0, 80)
	px := 1.0
	for i := 0; i < 80; i++ {
		if i%2 == 0 {
			px *= 1.002
		} else {
			px *= 0.999
		}
		candles = append(candles, models.Candle{
			High:  px * 1.001,
			Low:   px * 0.999,
			Close: px,
		})
	}
	m, err := VolatilityMetrics(candles)
	if err != nil {
		t.Fatalf("VolatilityMetrics: %v", err)
	}
	if m.DailyVolatility <= 0 || m.AnnualVolatility <= m.DailyVolatility {
		t.Errorf("unexpected volatilities: %+v", m)
	}
	if m.ATR14 <= 0 {
		t.Errorf("ATR14 = %v, want > 0", m.ATR14)
	}
}

func TestBacktestSMACross(t *testing.T) {
	// steady uptrend keeps the fast average above the slow one
	closes := make([]float64, 0, 120)
	px := 1.0
	for i := 0; i < 120; i++ {
		px *= 1.003
		closes = append(closes, px)
	}

	perf, err := BacktestSMACross(closes, StrategyParams{FastPeriod: 10, SlowPeriod: 50})
	if err != nil {
		t.Fatalf("BacktestSMACross: %v", err)
	}
	if perf.TotalReturn <= 0 {
		t.Errorf("uptrend total return = %v, want > 0", perf.TotalReturn)
	}
	if perf.Trades < 1 {
		t.Errorf("expected at least one trade, got %d", perf.Trades)
	}
	if perf.WinRate <= 0 {
		t.Errorf("win rate = %v, want > 0", perf.WinRate)
	}
}

func TestBacktestSMACrossValidation(t *testing.T) {
	closes := []float64{1, 2, 3}
	if _, err := BacktestSMACross(closes, StrategyParams{}); err == nil {
		t.Errorf("expected error for short series")
	}
	long := make([]float64, 100)
	for i := range long {
		long[i] = 1
	}
	if _, err := BacktestSMACross(long, StrategyParams{FastPeriod: 50, SlowPeriod: 10}); err == nil {
		t.Errorf("expected error for inverted periods")
	}
}

func TestPortfolioVolatility(t *testing.T) {
	a := []float64{0.01, -0.01, 0.02, -0.02}
	b := []float64{-0.01, 0.01, -0.02, 0.02} // perfectly hedged

	vol, err := PortfolioVolatility([][]float64{a, b})
	if err != nil {
		t.Fatalf("PortfolioVolatility: %v", err)
	}
	if !almostEqual(vol, 0, 1e-9) {
		t.Fatalf("hedged portfolio vol = %v, want 0", vol)
	}
}
