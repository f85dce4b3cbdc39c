// internal/storage/archive/archive.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/quantkit/alphabench/internal/core"
)

// Archiver persists score and backtest results as JSON documents.
// Paths are deterministic so a result can be located from its ID or
// symbol and date without a separate index.
type Archiver struct {
	backend Backend
}

// NewArchiver wraps a storage backend
func NewArchiver(backend Backend) *Archiver {
	return &Archiver{backend: backend}
}

func backtestPath(id string) string {
	return path.Join("backtests", id+".json")
}

func scorePath(symbol, date string) string {
	return path.Join("scores", symbol, date+".json")
}

// SaveBacktest archives a completed run and returns its path
func (a *Archiver) SaveBacktest(ctx context.Context, result *core.BacktestResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	p := backtestPath(result.ID)
	if err := a.backend.Put(ctx, p, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("writing %s: %w", p, err))
	}
	return p, nil
}

// LoadBacktest reads an archived run by ID
func (a *Archiver) LoadBacktest(ctx context.Context, id string) (*core.BacktestResult, error) {
	data, err := a.backend.Get(ctx, backtestPath(id))
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	var result core.BacktestResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return &result, nil
}

// ListBacktests returns the IDs of all archived runs
func (a *Archiver) ListBacktests(ctx context.Context) ([]string, error) {
	paths, err := a.backend.List(ctx, "backtests")
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		base := path.Base(p)
		if ext := path.Ext(base); ext == ".json" {
			ids = append(ids, base[:len(base)-len(ext)])
		}
	}
	return ids, nil
}

// SaveScore archives a score result keyed by symbol and generation date
func (a *Archiver) SaveScore(ctx context.Context, result *core.ScoreResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	p := scorePath(result.Symbol, result.GeneratedAt.Format("2006-01-02"))
	if err := a.backend.Put(ctx, p, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("writing %s: %w", p, err))
	}
	return p, nil
}

// LoadScore reads an archived score by symbol and date (2006-01-02)
func (a *Archiver) LoadScore(ctx context.Context, symbol, date string) (*core.ScoreResult, error) {
	data, err := a.backend.Get(ctx, scorePath(symbol, date))
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	var result core.ScoreResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return &result, nil
}
