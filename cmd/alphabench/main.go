package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantkit/alphabench/internal/collector"
	"github.com/quantkit/alphabench/internal/collector/yahoo"
	"github.com/quantkit/alphabench/internal/config"
	"github.com/quantkit/alphabench/internal/logger"
	"github.com/quantkit/alphabench/internal/storage/archive"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "alphabench",
	Short: "alphabench - multi-factor scoring and portfolio backtesting",
	Long: `alphabench scores instruments on trend, momentum, sentiment, divergence
and volume factors, and simulates score-driven portfolios against
historical data.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// setup loads config and builds the shared logger and collector
func setup() (*config.Config, *zap.Logger, collector.Collector, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	log := logger.Must(cfg.Logging.Level, debug || cfg.Logging.Debug)
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
	}

	var inner collector.Collector
	switch cfg.Collector.Provider {
	case "", "yahoo":
		inner = yahoo.New()
	default:
		return nil, nil, nil, fmt.Errorf("unknown collector provider %q", cfg.Collector.Provider)
	}
	if err := inner.Init(collector.Config{Enabled: true}); err != nil {
		return nil, nil, nil, fmt.Errorf("initializing collector: %w", err)
	}

	source := collector.WithRetry(inner, cfg.Collector.Retries, cfg.Collector.Backoff, log)
	return cfg, log, source, nil
}

// newArchiver builds the configured archive backend, or nil when
// archiving is disabled
func newArchiver(cfg *config.Config) (*archive.Archiver, error) {
	switch cfg.Archive.Type {
	case "localfs":
		backend, err := archive.NewLocalFS(cfg.Archive.Path)
		if err != nil {
			return nil, err
		}
		return archive.NewArchiver(backend), nil
	case "s3":
		backend, err := archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return archive.NewArchiver(backend), nil
	default:
		return nil, nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
