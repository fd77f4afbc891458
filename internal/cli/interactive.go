package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/arkline/fxquant/config"
	"github.com/arkline/fxquant/internal/utils"
)

// runInteractiveMode drives the menu loop: pick an analysis, pick the
// pair(s), render the result, repeat until the user quits.
func runInteractiveMode(cfg *config.Config) error {
	DisplayWelcomeBanner()

	ctx := context.Background()
	qa, err := newAnalyst(ctx, cfg)
	if err != nil {
		return err
	}

	for {
		action, err := PromptForAction()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Println("👋 Goodbye!")
				return nil
			}
			return err
		}
		if action == actionQuit {
			fmt.Println("👋 Goodbye!")
			return nil
		}

		if err := runInteractiveAction(ctx, cfg, qa, action); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Println()
				continue
			}
			DisplayError(err)
		}
		fmt.Println()
	}
}

func runInteractiveAction(ctx context.Context, cfg *config.Config, qa analystRunner, action string) error {
	switch action {
	case actionReport:
		symbol, err := PromptForPair()
		if err != nil {
			return err
		}
		timeframe, err := PromptForTimeframe()
		if err != nil {
			return err
		}
		sections, err := PromptForSections()
		if err != nil {
			return err
		}
		report := qa.CreateAnalysisReport(ctx, symbol, timeframe, sections)
		DisplayReport(report)

		save, err := PromptForSave()
		if err != nil {
			return err
		}
		if save {
			path, err := utils.SaveReport(cfg.ResultsDir, symbol, report)
			if err != nil {
				return err
			}
			fmt.Printf("💾 Report saved to %s\n", path)
		}

	case actionRisk:
		symbol, timeframe, err := promptPairAndTimeframe()
		if err != nil {
			return err
		}
		DisplayAnalysis(symbol, "Risk Analysis", qa.AnalyzeRiskMetrics(ctx, symbol, timeframe))

	case actionVolatility:
		symbol, timeframe, err := promptPairAndTimeframe()
		if err != nil {
			return err
		}
		DisplayAnalysis(symbol, "Volatility Analysis", qa.AnalyzeVolatility(ctx, symbol, timeframe))

	case actionCorrelation:
		symbols, err := PromptForPairs(2)
		if err != nil {
			return err
		}
		timeframe, err := PromptForTimeframe()
		if err != nil {
			return err
		}
		DisplayAnalysis(joinSymbols(symbols), "Correlation Analysis", qa.AnalyzeCorrelation(ctx, symbols, timeframe))

	case actionPortfolio:
		symbols, err := PromptForPairs(2)
		if err != nil {
			return err
		}
		timeframe, err := PromptForTimeframe()
		if err != nil {
			return err
		}
		DisplayAnalysis(joinSymbols(symbols), "Portfolio Risk Analysis", qa.AnalyzePortfolioRisk(ctx, symbols, timeframe))
	}

	return nil
}

// analystRunner is the slice of the facade the interactive loop uses.
type analystRunner interface {
	AnalyzeRiskMetrics(ctx context.Context, symbol, timeframe string) string
	AnalyzeVolatility(ctx context.Context, symbol, timeframe string) string
	AnalyzeCorrelation(ctx context.Context, symbols []string, timeframe string) string
	AnalyzePortfolioRisk(ctx context.Context, symbols []string, timeframe string) string
	CreateAnalysisReport(ctx context.Context, symbol, timeframe string, sections []string) string
}

func promptPairAndTimeframe() (string, string, error) {
	symbol, err := PromptForPair()
	if err != nil {
		return "", "", err
	}
	timeframe, err := PromptForTimeframe()
	if err != nil {
		return "", "", err
	}
	return symbol, timeframe, nil
}

func joinSymbols(symbols []string) string {
	return strings.Join(symbols, ", ")
}
