package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/arkline/fxquant/config"
	"github.com/arkline/fxquant/consts"
	"github.com/arkline/fxquant/internal/dataflows"
	"github.com/arkline/fxquant/internal/models"
	"github.com/arkline/fxquant/internal/quant"
)

// NewQuantRegistry wires the built-in forex data capabilities over the
// vendor dataflows. This is the one place capability names are bound.
func NewQuantRegistry(cfg *config.Config) (*Registry, error) {
	dfi := dataflows.New(cfg)
	return NewRegistry(map[string]DataFunc{
		consts.CapRiskMetrics:         RiskMetricsData(dfi),
		consts.CapVolatility:          VolatilityData(dfi),
		consts.CapCorrelation:         CorrelationData(dfi),
		consts.CapStrategyPerformance: StrategyPerformanceData(dfi),
		consts.CapForexReturns:        ForexReturnsData(dfi),
	})
}

// RiskMetricsData returns VaR, Sharpe ratio, max drawdown and annualized
// volatility for one pair.
func RiskMetricsData(dfi *dataflows.Interface) DataFunc {
	return func(ctx context.Context, args Args) string {
		symbol := args.String("symbol")
		periods := args.Int("periods", consts.RiskLookback)
		timeframe := args.String("timeframe")

		series, err := dfi.GetForexSeries(ctx, symbol, timeframe, periods)
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		metrics, err := quant.RiskMetrics(series.Closes())
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		return models.OkEnvelope(series.Symbol, map[string]any{
			"function":     consts.CapRiskMetrics,
			"risk_metrics": metrics,
		})
	}
}

// VolatilityData returns daily, annualized and rolling volatility plus ATR.
func VolatilityData(dfi *dataflows.Interface) DataFunc {
	return func(ctx context.Context, args Args) string {
		symbol := args.String("symbol")
		periods := args.Int("periods", consts.VolatilityLookback)
		timeframe := args.String("timeframe")

		series, err := dfi.GetForexSeries(ctx, symbol, timeframe, periods)
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		metrics, err := quant.VolatilityMetrics(toCandles(series))
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		return models.OkEnvelope(series.Symbol, map[string]any{
			"function":           consts.CapVolatility,
			"volatility_metrics": metrics,
		})
	}
}

// CorrelationData returns the pairwise correlation matrix over a pair set.
func CorrelationData(dfi *dataflows.Interface) DataFunc {
	return func(ctx context.Context, args Args) string {
		symbols := args.Strings("symbols")
		periods := args.Int("periods", consts.CorrelationLookback)
		timeframe := args.String("timeframe")

		if len(symbols) < 2 {
			return models.ErrEnvelope("", fmt.Sprintf("correlation needs at least 2 symbols, got %d", len(symbols)))
		}

		multi := dfi.GetMultiSeries(ctx, symbols, timeframe, periods)
		if len(multi) < 2 {
			return models.ErrEnvelope("", "insufficient series for correlation")
		}

		returnsBySymbol := make(map[string][]float64, len(multi))
		for sym, series := range multi {
			returns, err := quant.Returns(series.Closes())
			if err != nil {
				log.Printf("dropping %s from correlation: %v", sym, err)
				continue
			}
			returnsBySymbol[sym] = returns
		}

		matrix, err := quant.CorrelationMatrix(returnsBySymbol)
		if err != nil {
			return models.ErrEnvelope("", err.Error())
		}

		return models.OkEnvelope("", map[string]any{
			"function":           consts.CapCorrelation,
			"symbols":            symbols,
			"correlation_matrix": matrix,
		})
	}
}

// StrategyPerformanceData backtests the requested strategy for one pair.
func StrategyPerformanceData(dfi *dataflows.Interface) DataFunc {
	return func(ctx context.Context, args Args) string {
		symbol := args.String("symbol")
		strategyType := args.String("strategy_type")
		periods := args.Int("periods", consts.StrategyLookback)
		timeframe := args.String("timeframe")
		params := args.StrategyParams("parameters")

		if strategyType != "" && strategyType != "sma_cross" {
			return models.ErrEnvelope(symbol, fmt.Sprintf("unsupported strategy type: %s", strategyType))
		}

		series, err := dfi.GetForexSeries(ctx, symbol, timeframe, periods)
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		perf, err := quant.BacktestSMACross(series.Closes(), params)
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		return models.OkEnvelope(series.Symbol, map[string]any{
			"function":    consts.CapStrategyPerformance,
			"performance": perf,
		})
	}
}

// ForexReturnsData returns the raw daily return series for one pair.
func ForexReturnsData(dfi *dataflows.Interface) DataFunc {
	return func(ctx context.Context, args Args) string {
		symbol := args.String("symbol")
		periods := args.Int("periods", consts.PortfolioLookback)
		timeframe := args.String("timeframe")

		series, err := dfi.GetForexSeries(ctx, symbol, timeframe, periods)
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		returns, err := quant.Returns(series.Closes())
		if err != nil {
			return models.ErrEnvelope(symbol, err.Error())
		}

		return models.OkEnvelope(series.Symbol, map[string]any{
			"function": consts.CapForexReturns,
			"periods":  len(returns),
			"returns":  returns,
		})
	}
}

func toCandles(series *dataflows.Series) []models.Candle {
	candles := make([]models.Candle, 0, len(series.Bars))
	for _, b := range series.Bars {
		open, _ := b.Open.Float64()
		high, _ := b.High.Float64()
		low, _ := b.Low.Float64()
		closePx, _ := b.Close.Float64()
		candles = append(candles, models.Candle{
			Symbol: b.Symbol,
			Date:   b.Date.Format("2006-01-02"),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePx,
		})
	}
	return candles
}
