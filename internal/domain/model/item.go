// Package model contains domain models passed between layers.
package model

// Item is a single scored entry in a ranking snapshot. Items are produced
// by a data provider, scored by a scoring strategy, and treated as
// read-only by the ranking engine for the duration of a build or refresh.
type Item struct {
	ID    string // unique item id, e.g. a video id
	Title string // display title, used for deterministic tie-breaking

	// Raw engagement statistics.
	Views    int64
	Likes    int64
	Comments int64

	// Deltas since the previous snapshot. Zero on the first snapshot.
	DeltaViews    int64
	DeltaLikes    int64
	DeltaComments int64

	// Score is the integer ranking scalar assigned by a scoring strategy.
	Score int64
}

// Key returns the lightweight sort key for the item.
func (it Item) Key() RankKey {
	return RankKey{Score: it.Score, ID: it.ID, Title: it.Title}
}

// KeysOf maps a snapshot to its sort keys, preserving order.
func KeysOf(items []Item) []RankKey {
	keys := make([]RankKey, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	return keys
}
