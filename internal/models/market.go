package models

// Candle is one OHLC bar for a forex pair.
type Candle struct {
	Symbol string  `json:"symbol"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
}

// RiskMetrics are the per-pair risk figures embedded in analysis prompts.
type RiskMetrics struct {
	AnnualVolatility float64 `json:"annual_volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	VaR95            float64 `json:"var_95"`
}

type VolatilityMetrics struct {
	DailyVolatility  float64 `json:"daily_volatility"`
	AnnualVolatility float64 `json:"annual_volatility"`
	CurrentVol20D    float64 `json:"current_vol_20d"`
	ATR14            float64 `json:"atr_14"`
}

type StrategyPerformance struct {
	StrategyType string  `json:"strategy_type"`
	TotalReturn  float64 `json:"total_return"`
	WinRate      float64 `json:"win_rate"`
	Trades       int     `json:"trades"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	MaxDrawdown  float64 `json:"max_drawdown"`
}
