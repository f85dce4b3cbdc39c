package collector

import (
	"time"

	"github.com/quantkit/alphabench/internal/core"
	"go.uber.org/zap"
)

// Retrying wraps a collector with bounded retry and linear backoff on
// history fetches. A symbol that still fails after the last attempt
// returns the final error; callers decide whether to skip it.
type Retrying struct {
	inner   Collector
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

// WithRetry wraps the given collector. retries is the number of
// additional attempts after the first.
func WithRetry(inner Collector, retries int, backoff time.Duration, logger *zap.Logger) *Retrying {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retries < 0 {
		retries = 0
	}
	return &Retrying{inner: inner, retries: retries, backoff: backoff, logger: logger}
}

func (r *Retrying) Name() string {
	return r.inner.Name()
}

func (r *Retrying) Init(cfg Config) error {
	return r.inner.Init(cfg)
}

func (r *Retrying) FetchQuote(symbol string) (*core.Quote, error) {
	return r.inner.FetchQuote(symbol)
}

func (r *Retrying) FetchHistory(symbol string, start, end time.Time, interval string) ([]core.PriceBar, error) {
	var bars []core.PriceBar
	var err error

	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(r.backoff * time.Duration(attempt))
		}
		bars, err = r.inner.FetchHistory(symbol, start, end, interval)
		if err == nil {
			return bars, nil
		}
		r.logger.Warn("history fetch failed",
			zap.String("collector", r.inner.Name()),
			zap.String("symbol", symbol),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return nil, core.WrapError(core.ErrCollectorFailed, err)
}
