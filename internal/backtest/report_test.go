package backtest

import (
	"strings"
	"testing"
	"time"

	"github.com/quantkit/alphabench/internal/core"
)

func TestGenerateReport(t *testing.T) {
	r := &core.BacktestResult{
		ID:             "run-1",
		Symbols:        []string{"AAPL", "MSFT"},
		StartDate:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Frequency:      FreqMonthly,
		InitialCapital: 100000,
		FinalValue:     112000,
		Stats:          core.PerformanceStats{TotalReturn: 0.12, AnnualizedReturn: 0.12, MaxDrawdown: -0.08},
		TradeStats:     core.TradeStats{TotalTrades: 10, Buys: 6, Sells: 4, WinRate: 75},
		Benchmark: &core.BenchmarkComparison{
			Symbol: "SPY",
			Stats:  core.PerformanceStats{AnnualizedReturn: 0.08},
			Alpha:  0.04,
		},
	}

	report := GenerateReport(r)

	for _, want := range []string{
		"run-1",
		"AAPL, MSFT",
		"2023-01-01 to 2024-01-01",
		"--- Returns ---",
		"--- Risk ---",
		"--- Trades ---",
		"--- Benchmark ---",
		"SPY",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestGenerateReport_Failed(t *testing.T) {
	r := &core.BacktestResult{
		ID:      "run-2",
		Symbols: []string{"AAPL"},
		Err:     "[NO_DATA] no data available",
	}

	report := GenerateReport(r)
	if !strings.Contains(report, "Run failed") {
		t.Errorf("failed report missing failure line:\n%s", report)
	}
	if strings.Contains(report, "--- Returns ---") {
		t.Error("failed report should not include stats sections")
	}
}
