package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
	"github.com/quantkit/alphabench/internal/scoring"
	"github.com/quantkit/alphabench/internal/storage/archive"
)

var (
	scoreDate string
	scoreJSON bool
	scoreSave bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [symbol...]",
	Short: "Score one or more symbols",
	Long:  "Fetch price history, compute the multi-factor score and print the result for each symbol",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreDate, "date", "", "Score as of this date YYYY-MM-DD (default today)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print results as JSON")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "Archive each result")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, log, source, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if scoreDate != "" {
		asOf, err = time.Parse("2006-01-02", scoreDate)
		if err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}

	engine, err := scoring.NewEngine(cfg.Scoring, log)
	if err != nil {
		return err
	}

	var archiver *archive.Archiver
	if scoreSave {
		if archiver, err = newArchiver(cfg); err != nil {
			return err
		}
	}

	ctx := context.Background()
	start := asOf.AddDate(0, 0, -cfg.Backtest.HistoryDays)

	for _, symbol := range args {
		bars, err := source.FetchHistory(symbol, start, asOf, "1d")
		if err != nil {
			log.Error("fetch failed", zap.String("symbol", symbol), zap.Error(err))
			fmt.Fprintf(os.Stderr, "%s: %v\n", symbol, err)
			continue
		}

		series := indicator.Enrich(bars)
		result := engine.Score(series, symbol, nil, nil)

		if scoreJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			printScore(result)
			// Live quote only makes sense when scoring as of today
			if scoreDate == "" {
				if quote, err := source.FetchQuote(symbol); err == nil {
					fmt.Printf("Last quote:     %.2f (%s)\n\n", quote.Price, quote.Time.Format("2006-01-02 15:04"))
				}
			}
		}

		if scoreSave && archiver != nil {
			path, err := archiver.SaveScore(ctx, &result)
			if err != nil {
				return err
			}
			log.Info("score archived", zap.String("path", path))
		}
	}

	return nil
}

func printScore(r core.ScoreResult) {
	fmt.Printf("=== %s ===\n", r.Symbol)
	if r.Neutral {
		fmt.Println("Insufficient history, neutral result")
	}
	fmt.Printf("Score:          %.1f", r.TotalScore)
	if r.LateEntryPenalty > 0 {
		fmt.Printf(" (%.1f before late-entry penalty of %.1f)", r.OriginalScore, r.LateEntryPenalty)
	}
	fmt.Println()
	fmt.Printf("Recommendation: %s (%s conviction, position %s)\n", r.Recommendation, r.Conviction, r.PositionSize)
	if r.Warning != "" {
		fmt.Printf("Warning:        %s\n", r.Warning)
	}
	fmt.Printf("Components:     trend %.0f / momentum %.0f / sentiment %.0f / divergence %.0f / volume %.0f\n",
		r.Components.Trend.Score, r.Components.Momentum.Score, r.Components.Sentiment.Score,
		r.Components.Divergence.Score, r.Components.Volume.Score)
	if r.EntryPrice > 0 {
		fmt.Printf("Entry:          %.2f  stop %.2f  target %.2f  (R/R %.1f)\n",
			r.EntryPrice, r.StopLoss, r.TargetPrice, r.RiskRewardRatio)
	}
	fmt.Printf("Confidence:     %.2f\n", r.Confidence)
	fmt.Println()
}
