package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantkit/alphabench/internal/backtest"
	"github.com/quantkit/alphabench/internal/metrics"
	"github.com/quantkit/alphabench/internal/scoring"
)

var (
	backtestSymbols   []string
	backtestFrom      string
	backtestTo        string
	backtestFrequency string
	backtestBenchmark string
	backtestMetrics   string
	backtestSave      bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a portfolio backtest",
	Long:  "Simulate a score-driven portfolio over a universe of symbols and print performance statistics",
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringSliceVar(&backtestSymbols, "symbols", nil, "Symbols to trade (required)")
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestFrequency, "frequency", "", "Rebalance frequency: daily, weekly or monthly")
	backtestCmd.Flags().StringVar(&backtestBenchmark, "benchmark", "", "Benchmark symbol (empty disables comparison)")
	backtestCmd.Flags().StringVar(&backtestMetrics, "metrics-addr", "", "Serve Prometheus metrics on this address during the run")
	backtestCmd.Flags().BoolVar(&backtestSave, "save", false, "Archive the result")

	backtestCmd.MarkFlagRequired("symbols")
	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, log, source, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	fromDate, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}
	if toDate.Before(fromDate) {
		return fmt.Errorf("end date must be after start date")
	}

	simCfg := cfg.Backtest
	if cmd.Flags().Changed("frequency") {
		simCfg.Frequency = backtestFrequency
	}
	if cmd.Flags().Changed("benchmark") {
		simCfg.Benchmark = backtestBenchmark
	}
	if err := simCfg.Validate(); err != nil {
		return err
	}

	engine, err := scoring.NewEngine(cfg.Scoring, log)
	if err != nil {
		return err
	}

	sim := backtest.NewSimulator(source, engine, simCfg, log)

	metricsCfg := cfg.Metrics
	if backtestMetrics != "" {
		metricsCfg.Enabled = true
		metricsCfg.Addr = backtestMetrics
	}
	if metricsCfg.Enabled {
		registry := metrics.NewRegistry()
		sim = sim.WithMetrics(registry)

		mux := http.NewServeMux()
		mux.Handle(metricsCfg.Path, registry.Handler())
		go func() {
			log.Info("metrics listening", zap.String("addr", metricsCfg.Addr))
			if err := http.ListenAndServe(metricsCfg.Addr, mux); err != nil {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	ctx := context.Background()
	result := sim.Run(ctx, backtestSymbols, fromDate, toDate)

	fmt.Print(backtest.GenerateReport(result))

	if backtestSave {
		archiver, err := newArchiver(cfg)
		if err != nil {
			return err
		}
		if archiver != nil {
			path, err := archiver.SaveBacktest(ctx, result)
			if err != nil {
				return err
			}
			log.Info("result archived", zap.String("path", path))
		}
	}

	if result.Failed() {
		return fmt.Errorf("backtest failed: %s", result.Err)
	}
	return nil
}
