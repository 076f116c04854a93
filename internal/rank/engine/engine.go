// Package engine maintains a ranked Top-K view over a changing item
// collection. A Policy picks one of five strategies plus the sort and
// select algorithms it consumes; the engine dispatches build and
// refresh to the active strategy and exposes read operations over the
// resulting view.
//
// The engine is deliberately single threaded. Build, Refresh and
// UpdateScore mutate the view, the position index, the tree and the
// free list as one logical unit without locking; the owning service
// serializes callers.
package engine

import (
	"context"
	"math"
	"time"

	"github.com/okian/trendboard/internal/domain/model"
	"github.com/okian/trendboard/internal/rank/ostree"
	"github.com/okian/trendboard/internal/rank/sorting"
	"github.com/okian/trendboard/internal/rank/topk"
	"github.com/okian/trendboard/pkg/logger"
)

// Strategy selects how the Top-K view is built and refreshed.
type Strategy int

// Available strategies. FullSort, SelectThenSort and MultiMetric
// rebuild from scratch on every refresh; OrderStatisticsTree and
// OnlineInsert diff incrementally.
const (
	FullSort Strategy = iota
	SelectThenSort
	OrderStatisticsTree
	OnlineInsert
	MultiMetric
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case FullSort:
		return "full_sort"
	case SelectThenSort:
		return "select_then_sort"
	case OrderStatisticsTree:
		return "order_statistics_tree"
	case OnlineInsert:
		return "online_insert"
	case MultiMetric:
		return "multi_metric"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a configuration name back to a Strategy.
func ParseStrategy(name string) (Strategy, bool) {
	for s := FullSort; s <= MultiMetric; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Policy fixes the strategy and its sub-algorithms for the lifetime of
// an engine. Refresh always re-applies the policy given at build time.
type Policy struct {
	Strategy Strategy
	Sort     sorting.Algorithm
	Select   topk.Algorithm
	K        int
	// Metrics is the priority chain for MultiMetric, highest first.
	Metrics []model.Metric
}

// DefaultPolicy returns a full-sort policy over the top 10.
func DefaultPolicy() Policy {
	return Policy{
		Strategy: FullSort,
		Sort:     sorting.Quick,
		Select:   topk.Sequential,
		K:        10,
	}
}

// tombstone marks a lazily deleted array slot. Its minimal score ranks
// it behind every live entry.
var tombstone = model.RankKey{Score: math.MinInt64}

// Engine owns the ranked view, the position index and all strategy
// state. Input snapshots are read-only and never retained past the
// call that receives them.
type Engine struct {
	policy Policy
	log    logger.Logger

	cur  []model.RankKey
	prev []model.RankKey
	pos  map[string]int

	// MultiMetric keeps the tuple view alongside the key view.
	curMulti  []model.MetricKey
	prevMulti []model.MetricKey

	tree *ostree.Tree[model.RankKey]
	free []int

	history     *History
	built       bool
	itemsSeen   int
	lastElapsed time.Duration
}

// New creates an engine bound to the given policy. A MultiMetric policy
// without a priority chain falls back to the default one.
func New(policy Policy, opts ...Option) *Engine {
	if policy.Strategy == MultiMetric && len(policy.Metrics) == 0 {
		policy.Metrics = model.DefaultMetrics()
	}
	e := &Engine{
		policy: policy,
		log:    logger.Named("engine"),
		pos:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the policy the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Len returns the current view size.
func (e *Engine) Len() int {
	return len(e.cur)
}

func keyBefore(a, b model.RankKey) bool {
	return a.Before(b)
}

func metricBefore(a, b model.MetricKey) bool {
	return a.Before(b)
}

// treeBefore extends the key order to a strict total order by id, as
// the tree requires.
func treeBefore(a, b model.RankKey) bool {
	if a.Before(b) {
		return true
	}
	if b.Before(a) {
		return false
	}
	return a.ID < b.ID
}

// Build consumes a full snapshot and produces a view of size
// min(K, n). Any previous view and strategy state is discarded.
func (e *Engine) Build(items []model.Item) []model.RankKey {
	start := time.Now()

	e.prev, e.prevMulti = nil, nil
	e.free = nil
	e.itemsSeen = len(items)

	switch e.policy.Strategy {
	case OrderStatisticsTree:
		e.buildTree(items)
	case OnlineInsert, FullSort:
		e.buildFullSort(items)
	case SelectThenSort:
		e.buildSelectThenSort(items)
	case MultiMetric:
		e.buildMulti(items)
	default:
		e.buildFullSort(items)
	}

	e.rebuildIndex()
	e.built = true
	e.lastElapsed = time.Since(start)
	e.record("build", len(items), e.lastElapsed)
	return e.TopK(len(e.cur))
}

// Refresh re-applies the build policy to a new snapshot and reports the
// elapsed time. FullSort, SelectThenSort and MultiMetric rebuild from
// scratch; the tree and online-insert strategies diff incrementally.
func (e *Engine) Refresh(items []model.Item) ([]model.RankKey, time.Duration, error) {
	if !e.built {
		return nil, 0, ErrNotBuilt
	}
	start := time.Now()

	e.snapshotPrev()
	e.itemsSeen = len(items)

	switch e.policy.Strategy {
	case OrderStatisticsTree:
		e.refreshTree(items)
		e.rebuildIndex()
	case OnlineInsert:
		// Maintains the position index incrementally.
		e.refreshOnline(items)
	case SelectThenSort:
		e.buildSelectThenSort(items)
		e.rebuildIndex()
	case MultiMetric:
		e.buildMulti(items)
		e.rebuildIndex()
	default:
		e.buildFullSort(items)
		e.rebuildIndex()
	}

	e.lastElapsed = time.Since(start)
	e.record("refresh", len(items), e.lastElapsed)
	return e.TopK(len(e.cur)), e.lastElapsed, nil
}

func (e *Engine) buildFullSort(items []model.Item) {
	keys := model.KeysOf(items)
	sorting.Apply(keys, e.policy.Sort, keyBefore)
	e.cur = e.capped(keys)
	e.curMulti = nil
}

func (e *Engine) buildSelectThenSort(items []model.Item) {
	keys := model.KeysOf(items)
	top := topk.Select(keys, e.policy.K, e.policy.Select, keyBefore)
	// Selectors return a sorted subset already; the configured sort
	// still runs over it so the policy's ordering algorithm decides.
	sorting.Apply(top, e.policy.Sort, keyBefore)
	e.cur = top
	e.curMulti = nil
}

func (e *Engine) buildTree(items []model.Item) {
	e.tree = ostree.New(treeBefore, func(k model.RankKey) string { return k.ID })
	for _, it := range items {
		e.tree.Insert(it.Key())
	}
	e.cur = e.tree.TopK(e.policy.K)
	e.curMulti = nil
}

func (e *Engine) buildMulti(items []model.Item) {
	tuples := make([]model.MetricKey, len(items))
	scores := make(map[string]int64, len(items))
	for i, it := range items {
		tuples[i] = model.MetricKeyFor(it, e.policy.Metrics)
		scores[it.ID] = it.Score
	}

	top := topk.Select(tuples, e.policy.K, e.policy.Select, metricBefore)
	sorting.Apply(top, e.policy.Sort, metricBefore)
	e.curMulti = top

	// The key view mirrors the tuple order so every read path serves
	// the same ranking.
	e.cur = make([]model.RankKey, len(top))
	for i, t := range top {
		e.cur[i] = model.RankKey{Score: scores[t.ID], ID: t.ID, Title: t.Title}
	}
}

// refreshTree diffs the existing tree against the new snapshot: one
// in-order pass classifies every resident id as removed, rescored or
// unchanged, consuming matches from the snapshot map; what remains in
// the map afterward is genuinely new. Cost is O(m log n) for m changes
// instead of O(n log n) for a rebuild.
func (e *Engine) refreshTree(items []model.Item) {
	incoming := make(map[string]model.RankKey, len(items))
	for _, it := range items {
		incoming[it.ID] = it.Key()
	}

	var removals []string
	var updates []model.RankKey
	e.tree.InOrder(func(k model.RankKey) bool {
		key, ok := incoming[k.ID]
		if !ok {
			removals = append(removals, k.ID)
			return true
		}
		if key.Score != k.Score {
			updates = append(updates, key)
		}
		delete(incoming, k.ID)
		return true
	})

	for _, id := range removals {
		e.tree.RemoveByID(id)
	}
	for _, key := range updates {
		e.tree.Update(key.ID, key)
	}
	for _, key := range incoming {
		e.tree.Insert(key)
	}

	e.cur = e.tree.TopK(e.policy.K)
	e.log.Debug(context.Background(), "tree refresh applied",
		logger.Int("removed", len(removals)),
		logger.Int("updated", len(updates)),
		logger.Int("inserted", len(incoming)))
}

// TopK returns the first min(k, size) view entries without mutating the
// view.
func (e *Engine) TopK(k int) []model.RankKey {
	if k <= 0 || len(e.cur) == 0 {
		return nil
	}
	k = min(k, len(e.cur))
	out := make([]model.RankKey, k)
	copy(out, e.cur[:k])
	return out
}

// TopKMetrics returns the tuple view for the MultiMetric strategy, nil
// for every other strategy.
func (e *Engine) TopKMetrics(k int) []model.MetricKey {
	if k <= 0 || len(e.curMulti) == 0 {
		return nil
	}
	k = min(k, len(e.curMulti))
	out := make([]model.MetricKey, k)
	copy(out, e.curMulti[:k])
	return out
}

// PrevTopK returns the view as it stood before the last refresh.
func (e *Engine) PrevTopK(k int) []model.RankKey {
	if k <= 0 || len(e.prev) == 0 {
		return nil
	}
	k = min(k, len(e.prev))
	out := make([]model.RankKey, k)
	copy(out, e.prev[:k])
	return out
}

// Rank returns the 1-based rank of id. The tree strategy answers from
// the full tree, so ranks beyond K are visible; array strategies answer
// from the view.
func (e *Engine) Rank(id string) (int, bool) {
	if e.policy.Strategy == OrderStatisticsTree && e.tree != nil {
		return e.tree.RankOf(id)
	}
	i, ok := e.pos[id]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// Find returns the ranking key stored for id.
func (e *Engine) Find(id string) (model.RankKey, bool) {
	if e.policy.Strategy == OrderStatisticsTree && e.tree != nil {
		return e.tree.FindByID(id)
	}
	i, ok := e.pos[id]
	if !ok {
		return model.RankKey{}, false
	}
	return e.cur[i], true
}

// UpdateScore mutates one entry's score in place and repairs local
// order by neighbor exchange. Only the array-backed strategies support
// it; the tree and multi-metric strategies report false.
func (e *Engine) UpdateScore(id string, score int64) bool {
	switch e.policy.Strategy {
	case FullSort, SelectThenSort, OnlineInsert:
	default:
		e.log.Debug(context.Background(), "point update unsupported by strategy",
			logger.String("strategy", e.policy.Strategy.String()),
			logger.String("id", id))
		return false
	}
	i, ok := e.pos[id]
	if !ok {
		return false
	}
	e.cur[i].Score = score
	e.neighborAdjust(i)
	return true
}

// Mapping writes a position index entry directly, bypassing the usual
// consistency checks. Callers that merge views externally use it; it is
// not part of any refresh path.
func (e *Engine) Mapping(id string, offset int) {
	e.pos[id] = offset
}

// Stats is a point-in-time summary of engine state for observability.
type Stats struct {
	Strategy    string        `json:"strategy"`
	K           int           `json:"k"`
	ViewSize    int           `json:"view_size"`
	Items       int           `json:"items"`
	TreeSize    int           `json:"tree_size,omitempty"`
	TreeHeight  int           `json:"tree_height,omitempty"`
	FreeSlots   int           `json:"free_slots"`
	LastElapsed time.Duration `json:"last_elapsed_ns"`
}

// Stats reports the current engine state.
func (e *Engine) Stats() Stats {
	s := Stats{
		Strategy:    e.policy.Strategy.String(),
		K:           e.policy.K,
		ViewSize:    len(e.cur),
		Items:       e.itemsSeen,
		FreeSlots:   len(e.free),
		LastElapsed: e.lastElapsed,
	}
	if e.tree != nil {
		s.TreeSize = e.tree.Len()
		s.TreeHeight = e.tree.Height()
	}
	return s
}

// capped bounds a freshly built view to K entries. K <= 0 yields an
// empty view rather than an error.
func (e *Engine) capped(keys []model.RankKey) []model.RankKey {
	if e.policy.K <= 0 {
		return nil
	}
	if len(keys) > e.policy.K {
		return keys[:e.policy.K]
	}
	return keys
}

func (e *Engine) snapshotPrev() {
	e.prev = append(e.prev[:0], e.cur...)
	if e.policy.Strategy == MultiMetric {
		e.prevMulti = append(e.prevMulti[:0], e.curMulti...)
	}
}

// rebuildIndex recomputes the position index from the view, skipping
// sentinel slots.
func (e *Engine) rebuildIndex() {
	e.pos = make(map[string]int, len(e.cur))
	for i, k := range e.cur {
		if k.ID != "" {
			e.pos[k.ID] = i
		}
	}
}

func (e *Engine) record(op string, items int, elapsed time.Duration) {
	if e.history != nil {
		e.history.Add(Record{
			Strategy: e.policy.Strategy.String(),
			Op:       op,
			Items:    items,
			Elapsed:  elapsed,
			At:       time.Now(),
		})
	}
	e.log.Debug(context.Background(), "ranking pass complete",
		logger.String("op", op),
		logger.String("strategy", e.policy.Strategy.String()),
		logger.Int("items", items),
		logger.Int("view_size", len(e.cur)),
		logger.Duration("elapsed", elapsed))
}
