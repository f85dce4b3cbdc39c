package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quantkit/alphabench/internal/core"
)

func newTestArchiver(t *testing.T) *Archiver {
	t.Helper()
	backend, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewArchiver(backend)
}

func TestArchiver_BacktestRoundTrip(t *testing.T) {
	a := newTestArchiver(t)
	ctx := context.Background()

	result := &core.BacktestResult{
		ID:             "run-abc",
		Symbols:        []string{"AAPL"},
		StartDate:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Frequency:      "monthly",
		InitialCapital: 100000,
		FinalValue:     110000,
	}

	path, err := a.SaveBacktest(ctx, result)
	if err != nil {
		t.Fatalf("SaveBacktest() error = %v", err)
	}
	if path != "backtests/run-abc.json" {
		t.Errorf("path = %q", path)
	}

	loaded, err := a.LoadBacktest(ctx, "run-abc")
	if err != nil {
		t.Fatalf("LoadBacktest() error = %v", err)
	}
	if loaded.ID != result.ID || loaded.FinalValue != result.FinalValue {
		t.Errorf("loaded %+v, want %+v", loaded, result)
	}

	ids, err := a.ListBacktests(ctx)
	if err != nil {
		t.Fatalf("ListBacktests() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "run-abc" {
		t.Errorf("ListBacktests() = %v, want [run-abc]", ids)
	}
}

func TestArchiver_ScoreRoundTrip(t *testing.T) {
	a := newTestArchiver(t)
	ctx := context.Background()

	result := &core.ScoreResult{
		Symbol:         "MSFT",
		TotalScore:     82.5,
		Recommendation: core.StrongBuy,
		GeneratedAt:    time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
	}

	if _, err := a.SaveScore(ctx, result); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	loaded, err := a.LoadScore(ctx, "MSFT", "2024-06-14")
	if err != nil {
		t.Fatalf("LoadScore() error = %v", err)
	}
	if loaded.TotalScore != 82.5 || loaded.Recommendation != core.StrongBuy {
		t.Errorf("loaded %+v", loaded)
	}
}

func TestArchiver_LoadMissing(t *testing.T) {
	a := newTestArchiver(t)

	_, err := a.LoadBacktest(context.Background(), "nope")
	if err == nil {
		t.Fatal("LoadBacktest() of missing run should fail")
	}
	if !errors.Is(err, core.ErrArchiveFailed) {
		t.Errorf("error = %v, want ARCHIVE_FAILED", err)
	}
}

func TestArchiver_ListEmpty(t *testing.T) {
	a := newTestArchiver(t)
	ids, err := a.ListBacktests(context.Background())
	if err != nil {
		t.Fatalf("ListBacktests() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ListBacktests() = %v, want empty", ids)
	}
}
