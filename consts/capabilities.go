package consts

// Data capability names. The registry only accepts names from this set.
const (
	CapRiskMetrics         = "get_risk_metrics_data"
	CapVolatility          = "get_volatility_data"
	CapCorrelation         = "get_correlation_data"
	CapStrategyPerformance = "get_strategy_performance_data"
	CapForexReturns        = "get_forex_returns_data"
)

// Lookback periods (trading days) per analysis operation.
const (
	RiskLookback        = 252
	VolatilityLookback  = 60
	CorrelationLookback = 120
	StrategyLookback    = 252
	PortfolioLookback   = 252
)

// Report sections
const (
	SectionRisk        = "risk"
	SectionVolatility  = "volatility"
	SectionCorrelation = "correlation"
)

// DefaultComparisonSet is the fixed peer group used for correlation analysis
// when the caller does not supply one.
var DefaultComparisonSet = []string{"EUR/USD", "GBP/USD", "USD/JPY"}

const DefaultTimeframe = "1day"
