// Package dedupe fingerprints item snapshots so the service can skip a
// refresh when nothing changed since the last cycle.
package dedupe

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/trendboard/internal/domain/model"
)

// Tracker records snapshot fingerprints.
type Tracker interface {
	// SeenAndRecord fingerprints the snapshot and compares it with the
	// previously recorded one. Returns true when the snapshot is
	// unchanged; the new fingerprint is recorded either way.
	SeenAndRecord(ctx context.Context, items []model.Item) bool

	// Last returns the most recently recorded fingerprint, zero before
	// the first call.
	Last() uint64
}

// tracker keeps only the last fingerprint; snapshots supersede each
// other, there is nothing to evict.
type tracker struct {
	mu   sync.Mutex
	last uint64
	seen bool
}

// NewTracker creates an empty snapshot tracker.
func NewTracker() Tracker {
	return &tracker{}
}

func (t *tracker) SeenAndRecord(_ context.Context, items []model.Item) bool {
	fp := Fingerprint(items)

	t.mu.Lock()
	defer t.mu.Unlock()

	same := t.seen && t.last == fp
	t.last = fp
	t.seen = true
	return same
}

func (t *tracker) Last() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Fingerprint hashes the ranking-relevant fields of every item in
// order. Providers return snapshots in a stable order, so an equal hash
// means an equal snapshot for ranking purposes.
func Fingerprint(items []model.Item) uint64 {
	d := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(len(items)))
	_, _ = d.Write(buf[:])

	for i := range items {
		it := &items[i]
		_, _ = d.WriteString(it.ID)
		_, _ = d.Write([]byte{0})
		for _, v := range [...]int64{it.Score, it.Views, it.Likes, it.Comments} {
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
