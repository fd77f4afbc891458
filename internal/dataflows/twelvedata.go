package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// TwelveDataClient fetches forex time series from the TwelveData API
type TwelveDataClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

// NewTwelveDataClient creates a new TwelveData client
func NewTwelveDataClient(config *Config) *TwelveDataClient {
	cacheDir := filepath.Join(config.DataCacheDir, "twelvedata")
	cache := NewCacheManager(cacheDir, 6*time.Hour, config.CacheEnabled)

	client := resty.New()
	client.SetBaseURL("https://api.twelvedata.com")
	client.SetTimeout(15 * time.Second)

	return &TwelveDataClient{
		client: client,
		cache:  cache,
		apiKey: config.TwelveDataAPIKey,
	}
}

type twelveDataValue struct {
	DateTime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
}

type twelveDataResponse struct {
	Values  []twelveDataValue `json:"values"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
}

// GetTimeSeries gets up to outputSize daily bars for a forex pair,
// oldest first.
func (td *TwelveDataClient) GetTimeSeries(ctx context.Context, pair, interval string, outputSize int) (*Series, error) {
	if td.apiKey == "" {
		return nil, fmt.Errorf("TwelveData API key not configured")
	}

	if err := ValidatePair(pair); err != nil {
		return nil, err
	}
	pair = NormalizePair(pair)

	if interval == "" {
		interval = "1day"
	}
	if outputSize <= 0 {
		outputSize = 100
	}

	cacheKey := map[string]interface{}{
		"symbol":     pair,
		"interval":   interval,
		"outputsize": outputSize,
	}

	var cached Series
	if td.cache.Get("twelvedata", "time_series", cacheKey, &cached) {
		return &cached, nil
	}

	var result *Series
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := td.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"symbol":     pair,
				"interval":   interval,
				"outputsize": fmt.Sprintf("%d", outputSize),
				"apikey":     td.apiKey,
			}).
			Get("/time_series")

		if err != nil {
			return fmt.Errorf("failed to fetch series for %s: %w", pair, err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var parsed twelveDataResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return fmt.Errorf("failed to parse series response: %w", err)
		}

		if parsed.Status == "error" || len(parsed.Values) == 0 {
			msg := parsed.Message
			if msg == "" {
				msg = "empty time series"
			}
			return fmt.Errorf("twelvedata: %s", msg)
		}

		bars := make([]*Bar, 0, len(parsed.Values))
		for _, v := range parsed.Values {
			bar, err := parseTwelveDataBar(pair, v)
			if err != nil {
				return err
			}
			bars = append(bars, bar)
		}

		// TwelveData returns newest first
		sort.Slice(bars, func(i, j int) bool {
			return bars[i].Date.Before(bars[j].Date)
		})

		result = &Series{Symbol: pair, Timeframe: interval, Bars: bars}
		return nil
	})

	if err != nil {
		return nil, err
	}

	td.cache.Set("twelvedata", "time_series", cacheKey, result)

	return result, nil
}

func parseTwelveDataBar(pair string, v twelveDataValue) (*Bar, error) {
	date, err := time.Parse("2006-01-02", v.DateTime)
	if err != nil {
		// intraday intervals carry a timestamp
		date, err = time.Parse("2006-01-02 15:04:05", v.DateTime)
		if err != nil {
			return nil, fmt.Errorf("bad datetime %q: %w", v.DateTime, err)
		}
	}

	open, err := decimal.NewFromString(v.Open)
	if err != nil {
		return nil, fmt.Errorf("bad open %q: %w", v.Open, err)
	}
	high, err := decimal.NewFromString(v.High)
	if err != nil {
		return nil, fmt.Errorf("bad high %q: %w", v.High, err)
	}
	low, err := decimal.NewFromString(v.Low)
	if err != nil {
		return nil, fmt.Errorf("bad low %q: %w", v.Low, err)
	}
	closePx, err := decimal.NewFromString(v.Close)
	if err != nil {
		return nil, fmt.Errorf("bad close %q: %w", v.Close, err)
	}

	return &Bar{
		Symbol:    pair,
		Date:      date,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePx,
		Timestamp: time.Now(),
	}, nil
}
