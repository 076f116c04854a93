package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/trendboard/internal/domain/model"
	"github.com/okian/trendboard/internal/domain/scoring"
)

// Dummy is a synthetic provider simulating a slowly churning video
// catalog: every cycle all stats grow a little and a configured share
// of items is retired and replaced. Deltas and scores are filled in
// before the snapshot is handed out.
type Dummy struct {
	mu       sync.Mutex
	rng      *rand.Rand
	items    []model.Item
	count    int
	churnPct int
	strategy scoring.Strategy
}

// DummyOption applies a configuration option to a Dummy provider.
type DummyOption func(*Dummy)

// WithSeed fixes the random source for reproducible snapshots.
func WithSeed(seed int64) DummyOption {
	return func(d *Dummy) {
		d.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data only
	}
}

// NewDummy creates a provider tracking count items, replacing
// churnPercent of them per cycle and scoring with the given strategy.
func NewDummy(count, churnPercent int, strategy scoring.Strategy, opts ...DummyOption) *Dummy {
	d := &Dummy{
		rng:      rand.New(rand.NewSource(rand.Int63())), //nolint:gosec // synthetic data only
		count:    max(count, 1),
		churnPct: churnPercent,
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Snapshot advances the simulated catalog one cycle and returns a copy
// of it, scored and with deltas relative to the previous cycle.
func (d *Dummy) Snapshot(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.items == nil {
		d.items = make([]model.Item, d.count)
		for i := range d.items {
			d.items[i] = d.freshItem()
		}
	} else {
		d.advance()
	}

	scoring.Apply(d.items, d.strategy)

	out := make([]model.Item, len(d.items))
	copy(out, d.items)
	return out, nil
}

func (d *Dummy) freshItem() model.Item {
	views := d.rng.Int63n(1_000_000) + 1
	likes := d.rng.Int63n(views/10 + 1)
	comments := d.rng.Int63n(views/50 + 1)
	return model.Item{
		ID:            uuid.NewString(),
		Title:         fmt.Sprintf("Video %s", uuid.NewString()[:8]),
		Views:         views,
		Likes:         likes,
		Comments:      comments,
		DeltaViews:    views,
		DeltaLikes:    likes,
		DeltaComments: comments,
	}
}

func (d *Dummy) advance() {
	for i := range d.items {
		it := &d.items[i]

		if d.churnPct > 0 && d.rng.Intn(100) < d.churnPct {
			*it = d.freshItem()
			continue
		}

		dv := d.rng.Int63n(it.Views/20 + 100)
		dl := d.rng.Int63n(dv/10 + 10)
		dc := d.rng.Int63n(dv/50 + 5)

		it.Views += dv
		it.Likes += dl
		it.Comments += dc
		it.DeltaViews = dv
		it.DeltaLikes = dl
		it.DeltaComments = dc
	}
}
