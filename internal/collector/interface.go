package collector

import (
	"time"

	"github.com/quantkit/alphabench/internal/core"
)

// Config holds collector configuration
type Config struct {
	Enabled    bool
	Interval   string
	APIKey     string
	MaxRetries int
	Extra      map[string]any
}

// Collector defines the interface for market data collectors
type Collector interface {
	// Metadata
	Name() string

	// Lifecycle
	Init(cfg Config) error

	// Data fetching
	FetchQuote(symbol string) (*core.Quote, error)
	FetchHistory(symbol string, start, end time.Time, interval string) ([]core.PriceBar, error)
}
