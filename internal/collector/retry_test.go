package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/quantkit/alphabench/internal/core"
)

// flakyCollector fails a configurable number of times before succeeding
type flakyCollector struct {
	failures int
	calls    int
	bars     []core.PriceBar
}

func (f *flakyCollector) Name() string        { return "flaky" }
func (f *flakyCollector) Init(_ Config) error { return nil }
func (f *flakyCollector) FetchQuote(symbol string) (*core.Quote, error) {
	return &core.Quote{Symbol: symbol, Price: 100}, nil
}
func (f *flakyCollector) FetchHistory(symbol string, start, end time.Time, interval string) ([]core.PriceBar, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return f.bars, nil
}

func TestRetrying_SucceedsAfterRetry(t *testing.T) {
	inner := &flakyCollector{
		failures: 2,
		bars:     []core.PriceBar{{Symbol: "AAPL", Close: 100}},
	}
	r := WithRetry(inner, 3, time.Millisecond, nil)

	bars, err := r.FetchHistory("AAPL", time.Now().AddDate(-1, 0, 0), time.Now(), "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Errorf("got %d bars, want 1", len(bars))
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestRetrying_ExhaustsAttempts(t *testing.T) {
	inner := &flakyCollector{failures: 10}
	r := WithRetry(inner, 2, time.Millisecond, nil)

	_, err := r.FetchHistory("AAPL", time.Now().AddDate(-1, 0, 0), time.Now(), "1d")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !errors.Is(err, core.ErrCollectorFailed) {
		t.Errorf("error = %v, want ErrCollectorFailed", err)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", inner.calls)
	}
}
