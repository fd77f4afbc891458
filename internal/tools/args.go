package tools

import "github.com/arkline/fxquant/internal/quant"

func (a Args) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

func (a Args) Int(key string, fallback int) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func (a Args) Strings(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// StrategyParams reads fast/slow periods from a nested parameter map.
func (a Args) StrategyParams(key string) quant.StrategyParams {
	params := quant.StrategyParams{}
	raw, ok := a[key].(map[string]any)
	if !ok {
		return params
	}
	nested := Args(raw)
	params.FastPeriod = nested.Int("fast_period", 0)
	params.SlowPeriod = nested.Int("slow_period", 0)
	return params
}
