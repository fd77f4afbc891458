// Package analyst turns structured analysis requests into natural-language
// prompts, feeds them the data returned by the capability registry, and
// delegates interpretation to the chat model. Every failure degrades to a
// user-facing string; no error crosses a public operation boundary.
package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/arkline/fxquant/consts"
	"github.com/arkline/fxquant/internal/llm"
	"github.com/arkline/fxquant/internal/tools"
)

const persona = `You are a senior quantitative analyst at a foreign-exchange trading desk.
You interpret statistical risk and performance data for currency pairs and
explain what it means for position sizing and trade selection. Be precise,
reference the numbers you are given, and keep the conclusion actionable.`

// QuantAnalyst is the facade over the data capabilities and the chat model.
// The registry and persona are fixed at construction.
type QuantAnalyst struct {
	registry  *tools.Registry
	completer llm.Completer
}

func New(registry *tools.Registry, completer llm.Completer) *QuantAnalyst {
	return &QuantAnalyst{
		registry:  registry,
		completer: completer,
	}
}

// AnalyzeRiskMetrics interprets volatility, Sharpe ratio, drawdown and VaR
// for one pair.
func (a *QuantAnalyst) AnalyzeRiskMetrics(ctx context.Context, symbol, timeframe string) string {
	timeframe = orDefaultTimeframe(timeframe)
	instructions := fmt.Sprintf(
		"Analyze the risk metrics for %s on the %s timeframe over the last %d trading days. "+
			"Evaluate the annualized volatility, Sharpe ratio, maximum drawdown and 95%% VaR, "+
			"and explain what they imply for position sizing.",
		symbol, timeframe, consts.RiskLookback)

	data, ok := a.fetch(ctx, consts.CapRiskMetrics, tools.Args{
		"symbol":    symbol,
		"timeframe": timeframe,
		"periods":   consts.RiskLookback,
	})
	if !ok {
		return data
	}
	return a.interpret(ctx, instructions, dataset{raw: data})
}

// AnalyzeVolatility interprets the volatility profile of one pair.
func (a *QuantAnalyst) AnalyzeVolatility(ctx context.Context, symbol, timeframe string) string {
	timeframe = orDefaultTimeframe(timeframe)
	instructions := fmt.Sprintf(
		"Analyze the volatility profile of %s on the %s timeframe over the last %d trading days. "+
			"Compare the current 20-day volatility against the full-period figure, comment on the "+
			"ATR, and state whether volatility is expanding or contracting.",
		symbol, timeframe, consts.VolatilityLookback)

	data, ok := a.fetch(ctx, consts.CapVolatility, tools.Args{
		"symbol":    symbol,
		"timeframe": timeframe,
		"periods":   consts.VolatilityLookback,
	})
	if !ok {
		return data
	}
	return a.interpret(ctx, instructions, dataset{raw: data})
}

// AnalyzeCorrelation interprets the pairwise correlation structure of a set
// of pairs.
func (a *QuantAnalyst) AnalyzeCorrelation(ctx context.Context, symbols []string, timeframe string) string {
	timeframe = orDefaultTimeframe(timeframe)
	instructions := fmt.Sprintf(
		"Analyze the correlation matrix for %s on the %s timeframe over the last %d trading days. "+
			"Identify the strongest positive and negative relationships and what they mean for "+
			"diversification across these pairs.",
		strings.Join(symbols, ", "), timeframe, consts.CorrelationLookback)

	data, ok := a.fetch(ctx, consts.CapCorrelation, tools.Args{
		"symbols":   symbols,
		"timeframe": timeframe,
		"periods":   consts.CorrelationLookback,
	})
	if !ok {
		return data
	}
	return a.interpret(ctx, instructions, dataset{raw: data})
}

// AnalyzeStrategyPerformance interprets a backtest of the named strategy on
// one pair.
func (a *QuantAnalyst) AnalyzeStrategyPerformance(ctx context.Context, symbol, strategyType string, parameters map[string]any) string {
	if strategyType == "" {
		strategyType = "sma_cross"
	}
	instructions := fmt.Sprintf(
		"Analyze the backtest results of the %s strategy on %s over the last %d trading days. "+
			"Assess the total return, win rate, trade count, Sharpe ratio and maximum drawdown, "+
			"and judge whether the edge is robust or fragile.",
		strategyType, symbol, consts.StrategyLookback)

	data, ok := a.fetch(ctx, consts.CapStrategyPerformance, tools.Args{
		"symbol":        symbol,
		"strategy_type": strategyType,
		"parameters":    parameters,
		"periods":       consts.StrategyLookback,
	})
	if !ok {
		return data
	}
	return a.interpret(ctx, instructions, dataset{raw: data})
}

// AnalyzePortfolioRisk interprets the joint risk of a basket of pairs. It
// fetches the return series of every pair plus the correlation matrix of the
// basket before delegating to the chat model.
func (a *QuantAnalyst) AnalyzePortfolioRisk(ctx context.Context, symbols []string, timeframe string) string {
	timeframe = orDefaultTimeframe(timeframe)
	instructions := fmt.Sprintf(
		"Analyze the portfolio risk of an equal-weight basket of %s on the %s timeframe over the "+
			"last %d trading days. Use the per-pair return series together with the correlation "+
			"matrix to judge how much diversification the basket actually provides.",
		strings.Join(symbols, ", "), timeframe, consts.PortfolioLookback)

	datasets := make([]dataset, 0, len(symbols)+1)
	for _, symbol := range symbols {
		data, ok := a.fetch(ctx, consts.CapForexReturns, tools.Args{
			"symbol":    symbol,
			"timeframe": timeframe,
			"periods":   consts.PortfolioLookback,
		})
		if !ok {
			return data
		}
		datasets = append(datasets, dataset{label: symbol + " returns", raw: data})
	}
	corr, ok := a.fetch(ctx, consts.CapCorrelation, tools.Args{
		"symbols":   symbols,
		"timeframe": timeframe,
		"periods":   consts.PortfolioLookback,
	})
	if !ok {
		return corr
	}
	datasets = append(datasets, dataset{label: "correlation matrix", raw: corr})

	return a.interpret(ctx, instructions, datasets...)
}

// fetch dispatches one capability. A missing registration is reported with
// the fixed unavailable string and ok=false so the caller can return it
// without touching the chat model.
func (a *QuantAnalyst) fetch(ctx context.Context, name string, args tools.Args) (string, bool) {
	if !a.registry.Has(name) {
		return tools.Unavailable(name), false
	}
	return a.registry.Call(ctx, name, args), true
}

// dataset is one fetched payload destined for the prompt. The label prefixes
// the pretty-printed body when several payloads share one prompt.
type dataset struct {
	label string
	raw   string
}

type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeParseError
	outcomeRemoteError
)

// outcome is the result of inspecting one envelope: either a pretty-printed
// payload or a failure with its message.
type outcome struct {
	kind    outcomeKind
	pretty  string
	message string
}

// inspect parses a capability envelope. An absent success field counts as
// success; the payload schema is otherwise not enforced.
func inspect(raw string) outcome {
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return outcome{kind: outcomeParseError, message: err.Error()}
	}

	env := gjson.Parse(raw)
	if field := env.Get("success"); field.Exists() && !field.Bool() {
		return outcome{kind: outcomeRemoteError, message: env.Get("error").String()}
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return outcome{kind: outcomeParseError, message: err.Error()}
	}
	return outcome{kind: outcomeOK, pretty: string(pretty)}
}

// interpret runs the completion step: inspect every dataset, assemble the
// persona, instructions and pretty-printed payloads into one prompt, and
// submit it once. Any failure comes back as a glyph-prefixed string.
func (a *QuantAnalyst) interpret(ctx context.Context, instructions string, datasets ...dataset) string {
	var sections []string
	for _, ds := range datasets {
		out := inspect(ds.raw)
		switch out.kind {
		case outcomeParseError:
			return fmt.Sprintf("⚠️ Analysis failed: invalid data payload: %s", out.message)
		case outcomeRemoteError:
			return fmt.Sprintf("⚠️ Analysis failed: %s", out.message)
		}
		if ds.label != "" {
			sections = append(sections, ds.label+":\n"+out.pretty)
		} else {
			sections = append(sections, out.pretty)
		}
	}

	prompt := persona + "\n\n" + instructions + "\n\nData:\n" + strings.Join(sections, "\n\n")
	response, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("⚠️ Analysis failed: %s", err)
	}
	return response
}

func orDefaultTimeframe(timeframe string) string {
	if timeframe == "" {
		return consts.DefaultTimeframe
	}
	return timeframe
}
