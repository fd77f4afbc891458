package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/arkline/fxquant/consts"
	"github.com/arkline/fxquant/internal/dataflows"
)

// Interactive menu actions.
const (
	actionReport      = "Full report (risk + volatility + correlation)"
	actionRisk        = "Risk metrics analysis"
	actionVolatility  = "Volatility analysis"
	actionCorrelation = "Correlation analysis"
	actionPortfolio   = "Portfolio risk analysis"
	actionQuit        = "Quit"
)

// PromptForAction asks which analysis to run next.
func PromptForAction() (string, error) {
	var action string
	prompt := &survey.Select{
		Message: "What would you like to run?",
		Options: []string{
			actionReport,
			actionRisk,
			actionVolatility,
			actionCorrelation,
			actionPortfolio,
			actionQuit,
		},
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return "", err
	}
	return action, nil
}

// PromptForPair prompts the user to enter a currency pair.
func PromptForPair() (string, error) {
	var pair string
	prompt := &survey.Input{
		Message: "Enter the currency pair (e.g., EUR/USD, GBPUSD):",
		Help:    "Both EUR/USD and EURUSD forms are accepted",
		Default: consts.DefaultComparisonSet[0],
	}

	err := survey.AskOne(prompt, &pair, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		return dataflows.ValidatePair(dataflows.NormalizePair(str))
	}))
	if err != nil {
		return "", err
	}

	return dataflows.NormalizePair(pair), nil
}

// PromptForPairs prompts for a comma-separated list of pairs, at least min.
func PromptForPairs(min int) ([]string, error) {
	var raw string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Enter %d or more pairs, comma-separated:", min),
		Default: strings.Join(consts.DefaultComparisonSet, ", "),
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		pairs := splitPairs(str)
		if len(pairs) < min {
			return fmt.Errorf("need at least %d pairs", min)
		}
		for _, p := range pairs {
			if err := dataflows.ValidatePair(p); err != nil {
				return err
			}
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return splitPairs(raw), nil
}

// PromptForTimeframe asks for the bar timeframe.
func PromptForTimeframe() (string, error) {
	var timeframe string
	prompt := &survey.Select{
		Message: "Select the bar timeframe:",
		Options: []string{"1day", "4h", "1h"},
		Default: consts.DefaultTimeframe,
	}
	if err := survey.AskOne(prompt, &timeframe); err != nil {
		return "", err
	}
	return timeframe, nil
}

// PromptForSections asks which report sections to include.
func PromptForSections() ([]string, error) {
	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Select report sections:",
		Options: []string{consts.SectionRisk, consts.SectionVolatility, consts.SectionCorrelation},
		Default: []string{consts.SectionRisk, consts.SectionVolatility, consts.SectionCorrelation},
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// PromptForSave asks whether to persist the report.
func PromptForSave() (bool, error) {
	save := false
	prompt := &survey.Confirm{
		Message: "Save this report to the results directory?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &save); err != nil {
		return false, err
	}
	return save, nil
}

func splitPairs(raw string) []string {
	var pairs []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pairs = append(pairs, dataflows.NormalizePair(part))
	}
	return pairs
}
