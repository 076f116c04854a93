package engine

import (
	"context"

	"github.com/okian/trendboard/internal/domain/model"
	"github.com/okian/trendboard/pkg/logger"
)

// Online-insert strategy: the view is a sorted array patched in place.
// Departed entries are lazily overwritten with a tombstone and their
// slots collected on a free list; rescored entries are repaired by
// neighbor exchange; new arrivals reuse free slots before growing the
// array. Compaction runs only when deletions outnumber insertions.
//
// Invariant at rest: the array is sorted and tombstone free, and the
// position index covers exactly its entries.

func (e *Engine) refreshOnline(items []model.Item) {
	incoming := make(map[string]model.RankKey, len(items))
	for _, it := range items {
		incoming[it.ID] = it.Key()
	}

	// Reconcile live slots against the snapshot: departures become
	// tombstones, score changes are noted for repair. Matched ids are
	// consumed so only genuine arrivals remain in the map.
	var changed []model.RankKey
	deleted := 0
	for i := range e.cur {
		id := e.cur[i].ID
		if id == "" {
			continue
		}
		key, ok := incoming[id]
		if !ok {
			delete(e.pos, id)
			e.cur[i] = tombstone
			e.free = append(e.free, i)
			deleted++
			continue
		}
		if key.Score != e.cur[i].Score {
			changed = append(changed, key)
		}
		delete(incoming, id)
	}

	// Repair rescored entries locally. The index tracks every swap, so
	// later lookups see current offsets.
	for _, key := range changed {
		i := e.pos[key.ID]
		e.cur[i].Score = key.Score
		e.neighborAdjust(i)
	}

	// Place arrivals into free slots first, then append.
	for _, key := range incoming {
		var i int
		if n := len(e.free); n > 0 {
			i = e.free[n-1]
			e.free = e.free[:n-1]
			e.cur[i] = key
		} else {
			e.cur = append(e.cur, key)
			i = len(e.cur) - 1
		}
		e.pos[key.ID] = i
		e.neighborAdjust(i)
	}

	// More departures than arrivals leaves tombstones behind; compact
	// them out in one O(n) pass.
	if len(e.free) > 0 {
		e.compact()
	}

	e.truncate()

	e.log.Debug(context.Background(), "online refresh applied",
		logger.Int("deleted", deleted),
		logger.Int("rescored", len(changed)),
		logger.Int("arrived", len(incoming)),
		logger.Int("view_size", len(e.cur)))
}

// neighborAdjust restores local order around slot i: the entry walks
// left while it ranks strictly ahead of its left neighbor, else right
// while it ranks strictly behind its right one. Cost is the distance
// moved, never a full re-sort. Tombstones rank behind everything, so a
// live entry walking left drifts them toward the tail.
func (e *Engine) neighborAdjust(i int) {
	for i > 0 && e.cur[i].Before(e.cur[i-1]) {
		e.swapSlots(i, i-1)
		i--
	}
	for i < len(e.cur)-1 && e.cur[i+1].Before(e.cur[i]) {
		e.swapSlots(i, i+1)
		i++
	}
}

// swapSlots exchanges two slots and keeps both the position index and
// the free list pointing at the right offsets. Two tombstones never
// swap; the comparator reports neither ahead of the other.
func (e *Engine) swapSlots(i, j int) {
	e.cur[i], e.cur[j] = e.cur[j], e.cur[i]
	if id := e.cur[i].ID; id != "" {
		e.pos[id] = i
	} else {
		e.retargetFree(j, i)
	}
	if id := e.cur[j].ID; id != "" {
		e.pos[id] = j
	} else {
		e.retargetFree(i, j)
	}
}

// retargetFree rewrites one free-list entry after the tombstone it
// tracks moved. The free list stays short, a linear scan is fine.
func (e *Engine) retargetFree(from, to int) {
	for k := range e.free {
		if e.free[k] == from {
			e.free[k] = to
			return
		}
	}
}

// compact copies live entries contiguously, drops every tombstone and
// rebuilds the position index.
func (e *Engine) compact() {
	live := make([]model.RankKey, 0, len(e.cur)-len(e.free))
	for _, k := range e.cur {
		if k.ID != "" {
			live = append(live, k)
		}
	}
	e.cur = live
	e.free = e.free[:0]
	e.rebuildIndex()
}

// truncate bounds the view to K entries and drops index entries beyond
// the cut.
func (e *Engine) truncate() {
	k := e.policy.K
	if k < 0 {
		k = 0
	}
	if len(e.cur) <= k {
		return
	}
	for _, key := range e.cur[k:] {
		if key.ID != "" {
			delete(e.pos, key.ID)
		}
	}
	e.cur = e.cur[:k]
}
