package quant

import (
	"fmt"
	"math"

	"github.com/arkline/fxquant/internal/models"
)

// RiskMetrics computes annualized risk figures from daily closes.
func RiskMetrics(closes []float64) (*models.RiskMetrics, error) {
	returns, err := Returns(closes)
	if err != nil {
		return nil, err
	}

	daily := stdDev(returns)
	annual := daily * math.Sqrt(TradingDaysPerYear)

	var sharpe float64
	if daily > 0 {
		sharpe = mean(returns) / daily * math.Sqrt(TradingDaysPerYear)
	}

	return &models.RiskMetrics{
		AnnualVolatility: annual,
		SharpeRatio:      sharpe,
		MaxDrawdown:      MaxDrawdown(closes),
		VaR95:            percentile(returns, 0.05),
	}, nil
}

// MaxDrawdown is the largest peak-to-trough decline, as a negative fraction.
func MaxDrawdown(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}

	peak := closes[0]
	worst := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if peak > 0 {
			dd := c/peak - 1
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// PortfolioVolatility is the annualized volatility of the equal-weight
// portfolio over the aligned return series.
func PortfolioVolatility(returnSeries [][]float64) (float64, error) {
	if len(returnSeries) == 0 {
		return 0, fmt.Errorf("no return series")
	}

	n := len(returnSeries[0])
	for _, rs := range returnSeries {
		if len(rs) < n {
			n = len(rs)
		}
	}
	if n < 2 {
		return 0, fmt.Errorf("insufficient aligned returns: %d", n)
	}

	w := 1.0 / float64(len(returnSeries))
	combined := make([]float64, n)
	for _, rs := range returnSeries {
		// align on the most recent n observations
		tail := rs[len(rs)-n:]
		for i, r := range tail {
			combined[i] += w * r
		}
	}

	return stdDev(combined) * math.Sqrt(TradingDaysPerYear), nil
}
