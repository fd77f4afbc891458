package dataflows

import (
	"context"
	"fmt"
	"log"
)

// Interface provides high-level access to forex candle sources:
// TwelveData first, Yahoo Finance as fallback.
type Interface struct {
	twelveData *TwelveDataClient
	yahoo      *YahooClient
	config     *Config
}

// New creates the data flow interface
func New(config *Config) *Interface {
	return &Interface{
		twelveData: NewTwelveDataClient(config),
		yahoo:      NewYahooClient(config),
		config:     config,
	}
}

// GetForexSeries gets daily candles for a pair, oldest first.
func (dfi *Interface) GetForexSeries(ctx context.Context, pair, timeframe string, lookback int) (*Series, error) {
	if !dfi.config.OnlineTools {
		return nil, fmt.Errorf("online tools are disabled")
	}
	if timeframe == "" {
		timeframe = "1day"
	}

	series, err := dfi.twelveData.GetTimeSeries(ctx, pair, timeframe, lookback)
	if err == nil {
		return series, nil
	}
	log.Printf("twelvedata fetch failed for %s, falling back to yahoo: %v", pair, err)

	series, yerr := dfi.yahoo.GetTimeSeries(pair, lookback)
	if yerr != nil {
		return nil, fmt.Errorf("all vendors failed for %s: twelvedata: %v; yahoo: %w", pair, err, yerr)
	}
	return series, nil
}

// GetMultiSeries gets candles for several pairs; a pair that fails is
// omitted rather than failing the batch.
func (dfi *Interface) GetMultiSeries(ctx context.Context, pairs []string, timeframe string, lookback int) map[string]*Series {
	result := make(map[string]*Series, len(pairs))
	for _, pair := range pairs {
		series, err := dfi.GetForexSeries(ctx, pair, timeframe, lookback)
		if err != nil {
			log.Printf("skipping %s: %v", pair, err)
			continue
		}
		result[NormalizePair(pair)] = series
	}
	return result
}
