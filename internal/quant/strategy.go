package quant

import (
	"fmt"
	"math"

	"github.com/arkline/fxquant/internal/models"
)

// StrategyParams tune the backtest; zero values fall back to defaults.
type StrategyParams struct {
	FastPeriod int
	SlowPeriod int
}

// BacktestSMACross runs a long-only SMA crossover backtest over daily
// closes: long while the fast average is above the slow one, flat
// otherwise. One round trip is one trade.
func BacktestSMACross(closes []float64, params StrategyParams) (*models.StrategyPerformance, error) {
	fast := params.FastPeriod
	if fast <= 0 {
		fast = 10
	}
	slow := params.SlowPeriod
	if slow <= 0 {
		slow = 50
	}
	if fast >= slow {
		return nil, fmt.Errorf("fast period %d must be below slow period %d", fast, slow)
	}
	if len(closes) < slow+2 {
		return nil, fmt.Errorf("insufficient data: have %d closes, need %d", len(closes), slow+2)
	}

	fastSMA := rollingSMA(closes, fast)
	slowSMA := rollingSMA(closes, slow)

	equity := 1.0
	equityCurve := []float64{equity}
	strategyReturns := make([]float64, 0, len(closes))

	inPosition := false
	entryEquity := equity
	trades, wins := 0, 0

	for i := slow; i < len(closes); i++ {
		signal := fastSMA[i-1] > slowSMA[i-1] // yesterday's signal trades today

		r := 0.0
		if signal {
			r = (closes[i] - closes[i-1]) / closes[i-1]
		}
		equity *= 1 + r
		equityCurve = append(equityCurve, equity)
		strategyReturns = append(strategyReturns, r)

		if signal && !inPosition {
			inPosition = true
			entryEquity = equity
		}
		if !signal && inPosition {
			inPosition = false
			trades++
			if equity > entryEquity {
				wins++
			}
		}
	}
	if inPosition {
		trades++
		if equity > entryEquity {
			wins++
		}
	}

	winRate := 0.0
	if trades > 0 {
		winRate = float64(wins) / float64(trades)
	}

	daily := stdDev(strategyReturns)
	sharpe := 0.0
	if daily > 0 {
		sharpe = mean(strategyReturns) / daily * math.Sqrt(TradingDaysPerYear)
	}

	return &models.StrategyPerformance{
		StrategyType: "sma_cross",
		TotalReturn:  equity - 1,
		WinRate:      winRate,
		Trades:       trades,
		SharpeRatio:  sharpe,
		MaxDrawdown:  MaxDrawdown(equityCurve),
	}, nil
}

// rollingSMA[i] is the mean of the period closes ending at i; positions
// before a full window repeat the first complete value's partial mean.
func rollingSMA(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
			out[i] = sum / float64(period)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}
