// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
//
// The ranking engine is single threaded by design; the service owns
// the one mutex that serializes every engine call, including the
// periodic refresh loop.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/trendboard/internal/adapters/source"
	"github.com/okian/trendboard/internal/domain/dedupe"
	"github.com/okian/trendboard/internal/domain/types"
	"github.com/okian/trendboard/internal/rank/engine"
	"github.com/okian/trendboard/pkg/logger"
	"github.com/okian/trendboard/pkg/metrics"
)

// Entry is one leaderboard row as served to API consumers.
type Entry = types.Entry

// Service owns the ranking engine and its refresh lifecycle.
type Service struct {
	mu sync.Mutex

	// Core components
	eng     *engine.Engine
	prov    source.Provider
	tracker dedupe.Tracker
	history *engine.History

	// Configuration
	policy          engine.Policy
	refreshInterval time.Duration
	maxLimit        int
	historyLimit    int

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		policy:          engine.DefaultPolicy(),
		refreshInterval: 5 * time.Second,
		maxLimit:        100,
		historyLimit:    256,
		logger:          logger.Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tracker = dedupe.NewTracker()
	s.history = engine.NewHistory(s.historyLimit)
	s.eng = engine.New(s.policy,
		engine.WithLogger(s.logger.Named("engine")),
		engine.WithHistory(s.history))
	return s
}

// Start performs the initial build from the first snapshot and launches
// the periodic refresh loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.prov == nil {
		return fmt.Errorf("%w: no snapshot provider", ErrNotStarted)
	}

	items, err := s.prov.Snapshot(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "snapshot")
		return fmt.Errorf("initial snapshot: %w", err)
	}
	s.tracker.SeenAndRecord(ctx, items)

	start := time.Now()
	s.eng.Build(items)
	elapsed := time.Since(start)

	metrics.RecordBuildDuration(s.policy.Strategy.String(), float64(elapsed.Milliseconds()))
	s.publishGauges(s.eng.Stats(), len(items))

	s.logger.Info(ctx, "ranking built",
		logger.String("strategy", s.policy.Strategy.String()),
		logger.Int("items", len(items)),
		logger.Int("view_size", s.eng.Len()),
		logger.Duration("elapsed", elapsed))

	s.stopCh = make(chan struct{})
	s.started = true

	s.wg.Add(1)
	go s.refreshLoop(ctx)
	return nil
}

// Stop halts the refresh loop and waits for it to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Service) refreshLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := s.RefreshNow(ctx); err != nil {
				s.logger.Error(ctx, "refresh failed", logger.Error(err))
				metrics.RecordErrorByComponent("service", "refresh")
			}
		}
	}
}

// RefreshNow pulls a snapshot and refreshes the ranking immediately.
// An unchanged snapshot is skipped; the second return value reports
// whether a refresh actually ran.
func (s *Service) RefreshNow(ctx context.Context) (time.Duration, bool, error) {
	items, err := s.prov.Snapshot(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("snapshot: %w", err)
	}

	if s.tracker.SeenAndRecord(ctx, items) {
		metrics.RecordRefreshSkipped()
		s.logger.Debug(ctx, "refresh skipped, snapshot unchanged",
			logger.Int("items", len(items)))
		return 0, false, nil
	}

	s.mu.Lock()
	_, elapsed, err := s.eng.Refresh(items)
	st := s.eng.Stats()
	s.mu.Unlock()
	if err != nil {
		return 0, false, err
	}

	metrics.RecordRefreshDuration(s.policy.Strategy.String(), float64(elapsed.Milliseconds()))
	s.publishGauges(st, len(items))
	return elapsed, true, nil
}

// TopN returns the first n leaderboard entries, clamped to the
// configured maximum.
func (s *Service) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > s.maxLimit {
		n = s.maxLimit
	}

	s.mu.Lock()
	keys := s.eng.TopK(n)
	s.mu.Unlock()

	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Rank: i + 1, ID: k.ID, Title: k.Title, Score: k.Score}
	}
	return entries, nil
}

// Previous returns the view as it stood before the last refresh.
func (s *Service) Previous(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > s.maxLimit {
		n = s.maxLimit
	}

	s.mu.Lock()
	keys := s.eng.PrevTopK(n)
	s.mu.Unlock()

	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Rank: i + 1, ID: k.ID, Title: k.Title, Score: k.Score}
	}
	return entries, nil
}

// Rank returns the entry and rank for one item id.
func (s *Service) Rank(ctx context.Context, id string) (Entry, error) {
	s.mu.Lock()
	rank, ok := s.eng.Rank(id)
	key, found := s.eng.Find(id)
	s.mu.Unlock()

	if !ok || !found {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return Entry{Rank: rank, ID: key.ID, Title: key.Title, Score: key.Score}, nil
}

// UpdateScore applies a point score update through the engine's
// neighbor-exchange repair. Only array-backed strategies support it.
func (s *Service) UpdateScore(ctx context.Context, id string, score int64) bool {
	s.mu.Lock()
	ok := s.eng.UpdateScore(id, score)
	s.mu.Unlock()

	if ok {
		metrics.RecordScoreUpdate()
	} else {
		metrics.RecordScoreUpdateMiss()
	}
	return ok
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	st := s.eng.Stats()
	s.mu.Unlock()

	return map[string]interface{}{
		"strategy":        st.Strategy,
		"k":               st.K,
		"view_size":       st.ViewSize,
		"items":           st.Items,
		"tree_size":       st.TreeSize,
		"tree_height":     st.TreeHeight,
		"free_slots":      st.FreeSlots,
		"last_elapsed_ms": st.LastElapsed.Milliseconds(),
		"avg_refresh_ms":  s.history.Average("refresh").Milliseconds(),
		"history_size":    s.history.Len(),
		"fingerprint":     s.tracker.Last(),
	}
}

// History returns the retained build/refresh timing records.
func (s *Service) History() []engine.Record {
	return s.history.Records()
}

// publishGauges pushes engine state gauges. Callers pass a stats
// snapshot taken under the service mutex.
func (s *Service) publishGauges(st engine.Stats, items int) {
	metrics.UpdateViewSize(st.ViewSize)
	metrics.UpdateItemsTotal(items)
	metrics.UpdateTreeHeight(st.TreeHeight)
	metrics.UpdateFreeSlots(st.FreeSlots)
}
