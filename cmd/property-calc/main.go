// Command property-calc projects the finances of a property purchase:
// upfront costs, loan amortization, household cash flow, and stress tests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruralsim/property-calculator/internal/calculation"
	"github.com/ruralsim/property-calculator/internal/config"
	"github.com/ruralsim/property-calculator/internal/logging"
	"github.com/ruralsim/property-calculator/internal/output"
	"github.com/ruralsim/property-calculator/internal/server"
)

var (
	configPath string
	formatName string
	outputPath string
	logLevel   string
	listenAddr string
)

func main() {
	root := &cobra.Command{
		Use:   "property-calc",
		Short: "Financial projections for a property purchase",
		Long: `property-calc models a property purchase end to end: stamp duty and
LMI at settlement, the loan amortization schedule, a year-by-year household
cash flow projection with retirement and education events, and a fixed menu
of stress scenarios.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the scenario YAML file (defaults apply when omitted)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the projection and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjection(false)
		},
	}
	runCmd.Flags().StringVarP(&formatName, "format", "f", "", "report format: console, csv, json")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "Run the projection plus the stress scenario menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjection(true)
		},
	}
	stressCmd.Flags().StringVarP(&formatName, "format", "f", "", "report format: console, csv, json")
	stressCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection engine as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "listen address for the API server")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example scenario configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenario.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteExample(path); err != nil {
				return err
			}
			fmt.Printf("Wrote example configuration to %s\n", path)
			return nil
		},
	}

	root.AddCommand(runCmd, stressCmd, serveCmd, initCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the scenario file, or falls back to the built-in
// defaults when no file was given.
func loadConfig() (*config.FileConfig, error) {
	if configPath == "" {
		return config.LoadDefaults(), nil
	}
	return config.Load(configPath)
}

func buildLogger(cfg *config.FileConfig) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	return logging.New(level, cfg.Logging.Format)
}

func runProjection(withStress bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine := calculation.NewEngine()
	engine.SetLogger(logging.NewEngineLogger(logger))

	input := cfg.ToScenario()
	result, err := engine.Project(input)
	if err != nil {
		return err
	}
	report := output.NewReport(input, result, nil)
	if withStress {
		report.Stress = calculation.EvaluateStressScenarios(input, result.Upfront.FinalLoanAmount, result.Year1())
	}

	name := formatName
	if name == "" {
		name = cfg.Output.Format
	}
	formatter := output.GetFormatterByName(name)
	if formatter == nil {
		return fmt.Errorf("unknown format %q; available: %v", name, output.AvailableFormatterNames())
	}

	target := outputPath
	if target == "" {
		target = cfg.Output.File
	}
	if target != "" {
		written, err := output.WriteFormatted(formatter, report, target)
		if err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", written), zap.String("format", formatter.Name()))
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine := calculation.NewEngine()
	engine.SetLogger(logging.NewEngineLogger(logger))

	return server.New(engine, logger).ListenAndServe(listenAddr)
}
