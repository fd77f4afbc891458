package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arkline/fxquant/config"
	"github.com/arkline/fxquant/consts"
	"github.com/arkline/fxquant/internal/analyst"
	"github.com/arkline/fxquant/internal/dataflows"
	"github.com/arkline/fxquant/internal/llm"
	"github.com/arkline/fxquant/internal/tools"
	"github.com/arkline/fxquant/internal/utils"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "fxquant",
		Short: "fxquant - LLM-assisted forex quantitative analysis",
		Long: `fxquant computes risk, volatility, correlation and strategy statistics for
currency pairs and asks a large language model to interpret them. The result
is a readable analysis, or a full multi-section report per pair.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newCorrelateCmd(cfg))
	rootCmd.AddCommand(newPortfolioCmd(cfg))
	rootCmd.AddCommand(newReportCmd(cfg))
	rootCmd.AddCommand(newResultsCmd(cfg))
	rootCmd.AddCommand(newExportCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newAnalyst wires the capability registry and the chat model behind one
// facade. Called once per command invocation.
func newAnalyst(ctx context.Context, cfg *config.Config) (*analyst.QuantAnalyst, error) {
	if err := llm.NewDebugger(cfg).Initialize(); err != nil {
		return nil, err
	}

	registry, err := tools.NewQuantRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build capability registry: %w", err)
	}

	completer, err := llm.NewChatCompleter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return analyst.New(registry, completer), nil
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [PAIR]",
		Short: "Run a single analysis for a currency pair",
		Long: `Run one analysis (risk, volatility or strategy) for a currency pair.
Example: fxquant analyze EUR/USD --type risk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := dataflows.NormalizePair(args[0])
			if err := dataflows.ValidatePair(symbol); err != nil {
				return err
			}
			kind, _ := cmd.Flags().GetString("type")
			timeframe, _ := cmd.Flags().GetString("timeframe")
			strategyType, _ := cmd.Flags().GetString("strategy")
			fast, _ := cmd.Flags().GetInt("fast-period")
			slow, _ := cmd.Flags().GetInt("slow-period")

			ctx := cmd.Context()
			qa, err := newAnalyst(ctx, cfg)
			if err != nil {
				return err
			}

			var result string
			switch kind {
			case "risk":
				result = qa.AnalyzeRiskMetrics(ctx, symbol, timeframe)
			case "volatility":
				result = qa.AnalyzeVolatility(ctx, symbol, timeframe)
			case "strategy":
				result = qa.AnalyzeStrategyPerformance(ctx, symbol, strategyType, map[string]any{
					"fast_period": fast,
					"slow_period": slow,
				})
			default:
				return fmt.Errorf("unknown analysis type %q (use risk, volatility or strategy)", kind)
			}

			DisplayAnalysis(symbol, analysisTitle(kind), result)
			return nil
		},
	}

	cmd.Flags().String("type", "risk", "Analysis type: risk, volatility or strategy")
	cmd.Flags().String("timeframe", consts.DefaultTimeframe, "Bar timeframe, e.g. 1day")
	cmd.Flags().String("strategy", "sma_cross", "Strategy type for --type strategy")
	cmd.Flags().Int("fast-period", 10, "Fast SMA period for --type strategy")
	cmd.Flags().Int("slow-period", 50, "Slow SMA period for --type strategy")

	return cmd
}

// newCorrelateCmd creates the correlate command
func newCorrelateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlate [PAIR]...",
		Short: "Analyze the correlation structure of two or more pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols, err := normalizePairs(args)
			if err != nil {
				return err
			}
			timeframe, _ := cmd.Flags().GetString("timeframe")

			ctx := cmd.Context()
			qa, err := newAnalyst(ctx, cfg)
			if err != nil {
				return err
			}

			result := qa.AnalyzeCorrelation(ctx, symbols, timeframe)
			DisplayAnalysis(strings.Join(symbols, ", "), "Correlation Analysis", result)
			return nil
		},
	}
	cmd.Flags().String("timeframe", consts.DefaultTimeframe, "Bar timeframe, e.g. 1day")
	return cmd
}

// newPortfolioCmd creates the portfolio command
func newPortfolioCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio [PAIR]...",
		Short: "Analyze the joint risk of an equal-weight basket of pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols, err := normalizePairs(args)
			if err != nil {
				return err
			}
			timeframe, _ := cmd.Flags().GetString("timeframe")

			ctx := cmd.Context()
			qa, err := newAnalyst(ctx, cfg)
			if err != nil {
				return err
			}

			result := qa.AnalyzePortfolioRisk(ctx, symbols, timeframe)
			DisplayAnalysis(strings.Join(symbols, ", "), "Portfolio Risk Analysis", result)
			return nil
		},
	}
	cmd.Flags().String("timeframe", consts.DefaultTimeframe, "Bar timeframe, e.g. 1day")
	return cmd
}

// newReportCmd creates the report command
func newReportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [PAIR]",
		Short: "Build a multi-section analysis report for a currency pair",
		Long: `Build a report covering risk, volatility and correlation for a pair,
closing with an investment recommendation.
Example: fxquant report EUR/USD --sections risk,volatility --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := dataflows.NormalizePair(args[0])
			if err := dataflows.ValidatePair(symbol); err != nil {
				return err
			}
			timeframe, _ := cmd.Flags().GetString("timeframe")
			sectionsFlag, _ := cmd.Flags().GetString("sections")
			save, _ := cmd.Flags().GetBool("save")

			sections, err := parseSections(sectionsFlag)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			qa, err := newAnalyst(ctx, cfg)
			if err != nil {
				return err
			}

			report := qa.CreateAnalysisReport(ctx, symbol, timeframe, sections)
			DisplayReport(report)

			if save {
				path, err := utils.SaveReport(cfg.ResultsDir, symbol, report)
				if err != nil {
					return err
				}
				fmt.Printf("💾 Report saved to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().String("timeframe", consts.DefaultTimeframe, "Bar timeframe, e.g. 1day")
	cmd.Flags().String("sections", "", "Comma-separated sections: risk,volatility,correlation (all when empty)")
	cmd.Flags().Bool("save", false, "Save the report under the results directory")

	return cmd
}

// newResultsCmd creates the results command
func newResultsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "List saved analysis reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := utils.ListReports(cfg.ResultsDir)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println("No saved reports yet. Run 'fxquant report PAIR --save' first.")
				return nil
			}
			for _, r := range reports {
				fmt.Printf("%-10s %s  %6d bytes  %s\n",
					r.Symbol, r.Saved.Format("2006-01-02 15:04"), r.SizeByte, r.Path)
			}
			return nil
		},
	}
}

// newExportCmd creates the export command
func newExportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [PAIR]",
		Short: "Export the raw bar series for a pair as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := dataflows.NormalizePair(args[0])
			if err := dataflows.ValidatePair(symbol); err != nil {
				return err
			}
			timeframe, _ := cmd.Flags().GetString("timeframe")
			lookback, _ := cmd.Flags().GetInt("lookback")

			series, err := dataflows.New(cfg).GetForexSeries(cmd.Context(), symbol, timeframe, lookback)
			if err != nil {
				return err
			}

			path, err := utils.WriteSeriesCSV(cfg.DataDir, series)
			if err != nil {
				return err
			}
			fmt.Printf("💾 Exported %d bars to %s\n", len(series.Bars), path)
			return nil
		},
	}
	cmd.Flags().String("timeframe", consts.DefaultTimeframe, "Bar timeframe, e.g. 1day")
	cmd.Flags().Int("lookback", consts.RiskLookback, "Number of trading days to export")
	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("fxquant v1.0.0")
			fmt.Println("LLM-Assisted Forex Quantitative Analysis")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Manage fxquant configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.NewManager(config.WithInitialConfig(cfg))
			if err != nil {
				return err
			}
			fmt.Println(manager.Path())
			return nil
		},
	})

	return configCmd
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current fxquant Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:    %s\n", cfg.ResultsDir)
	fmt.Printf("Data Directory:       %s\n", cfg.DataDir)
	fmt.Printf("Cache Directory:      %s\n", cfg.DataCacheDir)
	fmt.Println()
	fmt.Printf("LLM Provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("Model:                %s\n", cfg.Model)
	fmt.Printf("Backend URL:          %s\n", cfg.BackendURL)
	fmt.Printf("Max Tokens:           %d\n", cfg.MaxTokens)
	fmt.Println()
	fmt.Printf("Online Tools:         %t\n", cfg.OnlineTools)
	fmt.Printf("Cache Enabled:        %t\n", cfg.CacheEnabled)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Printf("Eino Debug:           %t\n", cfg.EinoDebugEnabled)
	if cfg.EinoDebugEnabled {
		fmt.Printf("Eino Debug Port:      %d\n", cfg.EinoDebugPort)
		fmt.Printf("Debug URL:            http://localhost:%d\n", cfg.EinoDebugPort)
	}
	fmt.Println()

	fmt.Println("🔌 API Configuration:")
	fmt.Println("─────────────────────")
	if cfg.TwelveDataAPIKey != "" {
		fmt.Println("Twelve Data API:      ✅ Configured")
	} else {
		fmt.Println("Twelve Data API:      ❌ Not configured (Yahoo fallback only)")
	}
	switch cfg.LLMProvider {
	case "deepseek":
		if cfg.DeepSeekAPIKey != "" {
			fmt.Println("DeepSeek API:         ✅ Configured")
		} else {
			fmt.Println("DeepSeek API:         ❌ Not configured")
		}
	case "openai":
		if cfg.OpenAIAPIKey != "" {
			fmt.Println("OpenAI API:           ✅ Configured")
		} else {
			fmt.Println("OpenAI API:           ❌ Not configured")
		}
	}
}

// validateConfig validates the configuration and dependencies
func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating fxquant Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("📁 Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("✅")

	fmt.Print("⚙️  Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")

	fmt.Print("🔑 Checking API keys... ")
	var warnings []string
	if cfg.TwelveDataAPIKey == "" {
		warnings = append(warnings, "Twelve Data API key not configured, falling back to Yahoo Finance")
	}
	if cfg.LLMProvider == "deepseek" && cfg.DeepSeekAPIKey == "" {
		warnings = append(warnings, "DeepSeek API key not configured")
	}
	if cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "" {
		warnings = append(warnings, "OpenAI API key not configured")
	}
	if len(warnings) > 0 {
		fmt.Println("⚠️")
		for _, warning := range warnings {
			fmt.Printf("  ⚠️  %s\n", warning)
		}
	} else {
		fmt.Println("✅")
	}

	fmt.Print("🔧 Checking capability registry... ")
	registry, err := tools.NewQuantRegistry(cfg)
	if err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")
	fmt.Printf("   Registered capabilities: %s\n", strings.Join(registry.Names(), ", "))

	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("✅ Configuration validation completed successfully!")
	} else {
		fmt.Printf("⚠️  Configuration validation completed with %d warnings.\n", len(warnings))
	}

	fmt.Println()
	fmt.Println("💡 Tips:")
	fmt.Println("  • Set FXQUANT_TWELVEDATA_API_KEY for primary market data")
	fmt.Println("  • Set DEEPSEEK_API_KEY or OPENAI_API_KEY for the analysis model")
	fmt.Println("  • Use 'fxquant report EUR/USD' to build your first report")

	return nil
}

func analysisTitle(kind string) string {
	switch kind {
	case "risk":
		return "Risk Analysis"
	case "volatility":
		return "Volatility Analysis"
	case "strategy":
		return "Strategy Performance Analysis"
	}
	return "Analysis"
}

func normalizePairs(args []string) ([]string, error) {
	symbols := make([]string, 0, len(args))
	for _, arg := range args {
		symbol := dataflows.NormalizePair(arg)
		if err := dataflows.ValidatePair(symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

func parseSections(flag string) ([]string, error) {
	if strings.TrimSpace(flag) == "" {
		return nil, nil
	}
	var sections []string
	for _, section := range strings.Split(flag, ",") {
		section = strings.TrimSpace(strings.ToLower(section))
		switch section {
		case consts.SectionRisk, consts.SectionVolatility, consts.SectionCorrelation:
			sections = append(sections, section)
		case "":
		default:
			return nil, fmt.Errorf("unknown report section %q", section)
		}
	}
	return sections, nil
}
