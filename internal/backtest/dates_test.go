package backtest

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRebalanceDates_Monthly(t *testing.T) {
	dates, err := rebalanceDates(date(2024, 1, 15), date(2024, 4, 10), FreqMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, 1, 15), // start itself
		date(2024, 2, 1),
		date(2024, 3, 1),
		date(2024, 4, 1),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(dates), len(want), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestRebalanceDates_Weekly(t *testing.T) {
	dates, err := rebalanceDates(date(2024, 1, 1), date(2024, 1, 31), FreqWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 5 {
		t.Fatalf("got %d dates, want 5", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) != 7*24*time.Hour {
			t.Errorf("gap between dates[%d] and dates[%d] is not 7 days", i-1, i)
		}
	}
}

func TestRebalanceDates_Daily(t *testing.T) {
	dates, err := rebalanceDates(date(2024, 1, 1), date(2024, 1, 10), FreqDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Every calendar day in range, weekends included
	if len(dates) != 10 {
		t.Errorf("got %d dates, want 10", len(dates))
	}
}

func TestRebalanceDates_StrictlyIncreasing(t *testing.T) {
	for _, freq := range []string{FreqDaily, FreqWeekly, FreqMonthly} {
		dates, err := rebalanceDates(date(2023, 6, 20), date(2024, 6, 20), freq)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", freq, err)
		}
		for i := 1; i < len(dates); i++ {
			if !dates[i].After(dates[i-1]) {
				t.Errorf("%s: dates not strictly increasing at %d", freq, i)
			}
		}
	}
}

func TestRebalanceDates_EmptyRange(t *testing.T) {
	dates, err := rebalanceDates(date(2024, 5, 1), date(2024, 5, 1), FreqMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("got %d dates, want 0 for start == end", len(dates))
	}

	dates, _ = rebalanceDates(date(2024, 6, 1), date(2024, 5, 1), FreqMonthly)
	if len(dates) != 0 {
		t.Errorf("got %d dates, want 0 for start after end", len(dates))
	}
}

func TestRebalanceDates_UnknownFrequency(t *testing.T) {
	if _, err := rebalanceDates(date(2024, 1, 1), date(2024, 2, 1), "hourly"); err == nil {
		t.Error("expected error for unknown frequency")
	}
}
