package dataflows

import (
	"time"

	"github.com/arkline/fxquant/config"
	"github.com/shopspring/decimal"
)

// Config is an alias for the main application config
type Config = config.Config

// Bar is one OHLC bar as delivered by a vendor.
type Bar struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Timestamp time.Time       `json:"timestamp"`
}

// Series is an ordered run of bars for one pair, oldest first.
type Series struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	Bars      []*Bar `json:"bars"`
}

// Closes extracts the close prices, oldest first.
func (s *Series) Closes() []float64 {
	out := make([]float64, 0, len(s.Bars))
	for _, b := range s.Bars {
		f, _ := b.Close.Float64()
		out = append(out, f)
	}
	return out
}
