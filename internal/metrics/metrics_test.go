package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_ScoreComputed(t *testing.T) {
	r := NewRegistry()

	r.ScoreComputed("BUY")
	r.ScoreComputed("BUY")
	r.ScoreComputed("HOLD")

	if got := testutil.ToFloat64(r.scoresComputed.WithLabelValues("BUY")); got != 2 {
		t.Errorf("scores BUY = %f, want 2", got)
	}
	if got := testutil.ToFloat64(r.scoresComputed.WithLabelValues("HOLD")); got != 1 {
		t.Errorf("scores HOLD = %f, want 1", got)
	}
}

func TestRegistry_BacktestCompleted(t *testing.T) {
	r := NewRegistry()

	r.BacktestCompleted("ok", 2*time.Second)
	r.BacktestCompleted("failed", time.Second)

	if got := testutil.ToFloat64(r.backtestsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("backtests ok = %f, want 1", got)
	}
	if got := testutil.ToFloat64(r.backtestsTotal.WithLabelValues("failed")); got != 1 {
		t.Errorf("backtests failed = %f, want 1", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.RebalanceProcessed()
	r.FetchError("AAPL")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alphabench_rebalances_total") {
		t.Error("expected rebalances metric in scrape output")
	}
	if !strings.Contains(body, "alphabench_fetch_errors_total") {
		t.Error("expected fetch errors metric in scrape output")
	}
}
