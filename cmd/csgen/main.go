package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/export"
	"github.com/PSavvateev/cs-data-generator/internal/pipeline"
	"github.com/PSavvateev/cs-data-generator/internal/report"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "csgen",
	Short: "Synthetic customer-support dataset generator",
	Long: `csgen generates a reproducible synthetic customer-support dataset:
agents, customers, tickets, interactions, call/chat sessions, workforce
time allocations and QA evaluations, all driven by one random seed.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset and write it to disk",
	Long: `Generate runs the full pipeline and exports the result.

The same configuration and seed always produce byte-identical output.`,
	RunE: runGenerate,
}

var (
	configFlag    string
	outFlag       string
	formatFlag    string
	seedFlag      int64
	reportFlag    bool
	integrityFlag bool
)

func init() {
	generateCmd.Flags().StringVar(&configFlag, "config", "", "Path to a YAML config file (defaults apply when omitted)")
	generateCmd.Flags().StringVar(&outFlag, "out", "output", "Output directory")
	generateCmd.Flags().StringVar(&formatFlag, "format", "csv", "Output format: csv, excel or both")
	generateCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Override the configured random seed")
	generateCmd.Flags().BoolVar(&reportFlag, "report", false, "Print a dataset summary to stdout")
	generateCmd.Flags().BoolVar(&integrityFlag, "check-integrity", false, "Fail if cross-table references are inconsistent")

	validateCmd.Flags().StringVar(&configFlag, "config", "", "Path to a YAML config file (defaults apply when omitted)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config, then generate in memory and check integrity",
	Long: `Validate loads the configuration, runs the full pipeline without
writing anything to disk, and checks cross-table referential integrity
over the result.`,
	RunE: runValidate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("csgen %s\n", rootCmd.Version)
	},
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	if configFlag == "" {
		return config.Default(), nil
	}
	return config.Load(configFlag)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.RandomSeed = seedFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log.Info().
		Int64("seed", cfg.RandomSeed).
		Int("tickets", cfg.NumTickets).
		Int("customers", cfg.UniqueCustomers).
		Int("agents", cfg.UniqueAgents).
		Msg("generating dataset")

	ds, err := pipeline.New(cfg, log).Generate()
	if err != nil {
		return err
	}

	if integrityFlag {
		if err := pipeline.ValidateIntegrity(ds); err != nil {
			return fmt.Errorf("integrity check failed: %w", err)
		}
		log.Info().Msg("integrity check passed")
	}

	switch formatFlag {
	case "csv":
		if err := writeCSV(log, ds); err != nil {
			return err
		}
	case "excel":
		if err := writeExcel(log, ds); err != nil {
			return err
		}
	case "both":
		if err := writeCSV(log, ds); err != nil {
			return err
		}
		if err := writeExcel(log, ds); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want csv, excel or both)", formatFlag)
	}

	if reportFlag {
		report.Write(os.Stdout, cfg, ds)
	}
	return nil
}

func writeCSV(log zerolog.Logger, ds *pipeline.Dataset) error {
	paths, err := export.WriteCSV(ds, outFlag)
	if err != nil {
		return fmt.Errorf("exporting CSV: %w", err)
	}
	log.Info().Int("files", len(paths)).Str("dir", outFlag).Msg("wrote CSV tables")
	return nil
}

func writeExcel(log zerolog.Logger, ds *pipeline.Dataset) error {
	path := filepath.Join(outFlag, "cs_dataset.xlsx")
	if err := os.MkdirAll(outFlag, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outFlag, err)
	}
	if err := export.WriteExcel(ds, path); err != nil {
		return fmt.Errorf("exporting Excel: %w", err)
	}
	log.Info().Str("path", path).Msg("wrote Excel workbook")
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ds, err := pipeline.New(cfg, log).Generate()
	if err != nil {
		return err
	}
	if err := pipeline.ValidateIntegrity(ds); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	fmt.Println("config ok, generated dataset passes integrity checks")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
