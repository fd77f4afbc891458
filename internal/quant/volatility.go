package quant

import (
	"fmt"
	"math"

	"github.com/arkline/fxquant/internal/models"
)

// VolatilityMetrics computes daily, annualized and rolling 20-day
// volatility plus ATR(14) from daily candles.
func VolatilityMetrics(candles []models.Candle) (*models.VolatilityMetrics, error) {
	closes := make([]float64, 0, len(candles))
	for _, c := range candles {
		closes = append(closes, c.Close)
	}

	returns, err := Returns(closes)
	if err != nil {
		return nil, err
	}

	daily := stdDev(returns)

	vol20 := daily
	if len(returns) > 20 {
		vol20 = stdDev(returns[len(returns)-20:])
	}

	atr, err := ATR(candles, 14)
	if err != nil {
		return nil, err
	}

	return &models.VolatilityMetrics{
		DailyVolatility:  daily,
		AnnualVolatility: daily * math.Sqrt(TradingDaysPerYear),
		CurrentVol20D:    vol20,
		ATR14:            atr,
	}, nil
}

// ATR is the average true range over the trailing period.
func ATR(candles []models.Candle, period int) (float64, error) {
	if len(candles) < period+1 {
		return 0, fmt.Errorf("insufficient data for ATR: have %d candles, need %d", len(candles), period+1)
	}

	trueRanges := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		tr1 := candles[i].High - candles[i].Low
		tr2 := math.Abs(candles[i].High - candles[i-1].Close)
		tr3 := math.Abs(candles[i].Low - candles[i-1].Close)
		trueRanges = append(trueRanges, math.Max(tr1, math.Max(tr2, tr3)))
	}

	tail := trueRanges[len(trueRanges)-period:]
	return mean(tail), nil
}
