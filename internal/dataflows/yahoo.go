package dataflows

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// YahooClient is the fallback forex candle source. Yahoo quotes pairs in
// the EURUSD=X convention; bars come back as decimals.
type YahooClient struct {
	cache *CacheManager
}

// NewYahooClient creates a new Yahoo Finance client
func NewYahooClient(config *Config) *YahooClient {
	cacheDir := filepath.Join(config.DataCacheDir, "yahoo")
	cache := NewCacheManager(cacheDir, 24*time.Hour, config.CacheEnabled)

	return &YahooClient{cache: cache}
}

// GetTimeSeries gets roughly lookback daily bars for a pair, oldest first.
// Weekends mean the calendar window is padded before the fetch and the
// series trimmed after.
func (yc *YahooClient) GetTimeSeries(pair string, lookback int) (*Series, error) {
	if err := ValidatePair(pair); err != nil {
		return nil, err
	}
	pair = NormalizePair(pair)

	if lookback <= 0 {
		lookback = 100
	}

	cacheKey := map[string]interface{}{
		"symbol":   pair,
		"lookback": lookback,
	}

	var cached Series
	if yc.cache.Get("yahoo", "time_series", cacheKey, &cached) {
		return &cached, nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(lookback*7/5 + 7))

	var result *Series
	err := WithRetry(DefaultRetryConfig(), func() error {
		params := &chart.Params{
			Symbol:   YahooSymbol(pair),
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		bars := make([]*Bar, 0, lookback)
		for iter.Next() {
			b := iter.Bar()
			bars = append(bars, &Bar{
				Symbol:    pair,
				Date:      time.Unix(int64(b.Timestamp), 0),
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Timestamp: time.Now(),
			})
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get bars for %s: %w", pair, err)
		}
		if len(bars) == 0 {
			return fmt.Errorf("no bars returned for %s", pair)
		}

		sort.Slice(bars, func(i, j int) bool {
			return bars[i].Date.Before(bars[j].Date)
		})
		if len(bars) > lookback {
			bars = bars[len(bars)-lookback:]
		}

		result = &Series{Symbol: pair, Timeframe: "1day", Bars: bars}
		return nil
	})

	if err != nil {
		return nil, err
	}

	yc.cache.Set("yahoo", "time_series", cacheKey, result)

	return result, nil
}
