package engine

import (
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/okian/trendboard/internal/domain/model"
	"github.com/okian/trendboard/internal/rank/sorting"
	"github.com/okian/trendboard/internal/rank/topk"
	"github.com/okian/trendboard/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var allStrategies = []Strategy{FullSort, SelectThenSort, OrderStatisticsTree, OnlineInsert, MultiMetric}

// item builds a test item whose views mirror the score so the
// MultiMetric strategy, prioritized on views, ranks identically to the
// single-score strategies.
func item(id string, score int64) model.Item {
	return model.Item{
		ID:    id,
		Title: "title-" + id,
		Views: score,
		Score: score,
	}
}

func policyFor(s Strategy, k int) Policy {
	return Policy{
		Strategy: s,
		Sort:     sorting.Quick,
		Select:   topk.Sequential,
		K:        k,
		Metrics:  []model.Metric{model.MetricViews},
	}
}

func ids(keys []model.RankKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildThenRefreshReordersTopK(t *testing.T) {
	initial := []model.Item{item("A", 100), item("B", 90), item("C", 80), item("D", 70)}
	changed := []model.Item{item("A", 100), item("B", 90), item("C", 80), item("D", 95)}

	for _, s := range allStrategies {
		e := New(policyFor(s, 3))

		view := e.Build(initial)
		if !equalIDs(ids(view), "A", "B", "C") {
			t.Errorf("%s: build view = %v, want [A B C]", s, ids(view))
		}

		view, _, err := e.Refresh(changed)
		if err != nil {
			t.Fatalf("%s: refresh: %v", s, err)
		}
		if !equalIDs(ids(view), "A", "D", "B") {
			t.Errorf("%s: refreshed view = %v, want [A D B]", s, ids(view))
		}
	}
}

func TestViewSizeIsMinOfKAndN(t *testing.T) {
	items := []model.Item{item("A", 3), item("B", 2), item("C", 1)}
	for _, s := range allStrategies {
		for _, k := range []int{1, 3, 10} {
			e := New(policyFor(s, k))
			view := e.Build(items)
			want := min(k, len(items))
			if len(view) != want {
				t.Errorf("%s k=%d: view size %d, want %d", s, k, len(view), want)
			}
		}
	}
}

func TestNonPositiveKYieldsEmptyView(t *testing.T) {
	items := []model.Item{item("A", 3), item("B", 2)}
	for _, s := range allStrategies {
		e := New(policyFor(s, 0))
		if view := e.Build(items); len(view) != 0 {
			t.Errorf("%s: K=0 build returned %v", s, ids(view))
		}
	}
}

func TestSortednessInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	items := make([]model.Item, 200)
	for i := range items {
		items[i] = item(fmt.Sprintf("id-%03d", i), int64(rng.Intn(500)))
	}

	for _, s := range allStrategies {
		e := New(policyFor(s, 50))
		view := e.Build(items)
		for i := 1; i < len(view); i++ {
			if view[i].Before(view[i-1]) {
				t.Fatalf("%s: view[%d] ranks before view[%d]", s, i, i-1)
			}
		}
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	items := make([]model.Item, 100)
	for i := range items {
		items[i] = item(fmt.Sprintf("id-%03d", i), int64(rng.Intn(300)))
	}

	for _, s := range allStrategies {
		e := New(policyFor(s, 20))
		e.Build(items)

		first, _, err := e.Refresh(items)
		if err != nil {
			t.Fatalf("%s: refresh: %v", s, err)
		}
		second, _, err := e.Refresh(items)
		if err != nil {
			t.Fatalf("%s: refresh: %v", s, err)
		}

		if len(first) != len(second) {
			t.Fatalf("%s: view size changed on identical snapshot", s)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("%s: view[%d] changed on identical snapshot: %v vs %v", s, i, first[i], second[i])
			}
		}
		for i, k := range second {
			rank, ok := e.Rank(k.ID)
			if !ok || rank != i+1 {
				t.Errorf("%s: Rank(%s) = %d ok=%v, want %d", s, k.ID, rank, ok, i+1)
			}
		}
	}
}

func TestRefreshBeforeBuildFails(t *testing.T) {
	e := New(policyFor(FullSort, 3))
	if _, _, err := e.Refresh([]model.Item{item("A", 1)}); err != ErrNotBuilt {
		t.Errorf("got %v, want ErrNotBuilt", err)
	}
}

func TestTreeStrategyRanks(t *testing.T) {
	e := New(policyFor(OrderStatisticsTree, 3))
	e.Build([]model.Item{item("A", 50), item("B", 40), item("C", 30)})

	rank, ok := e.Rank("B")
	if !ok || rank != 2 {
		t.Errorf("Rank(B) = %d ok=%v, want 2", rank, ok)
	}
	view := e.TopK(3)
	if !equalIDs(ids(view), "A", "B", "C") {
		t.Errorf("view = %v", ids(view))
	}
}

func TestTreeRanksBeyondViewBound(t *testing.T) {
	e := New(policyFor(OrderStatisticsTree, 2))
	e.Build([]model.Item{item("A", 50), item("B", 40), item("C", 30)})

	// C is outside the top-2 view but the tree still knows it.
	rank, ok := e.Rank("C")
	if !ok || rank != 3 {
		t.Errorf("Rank(C) = %d ok=%v, want 3", rank, ok)
	}
}

func TestOnlineInsertReusesFreedSlot(t *testing.T) {
	e := New(policyFor(OnlineInsert, 3))
	e.Build([]model.Item{item("A", 100), item("B", 90), item("C", 80)})

	view, _, err := e.Refresh([]model.Item{item("A", 100), item("C", 80), item("D", 85)})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !equalIDs(ids(view), "A", "D", "C") {
		t.Fatalf("view = %v, want [A D C]", ids(view))
	}
	if _, ok := e.Rank("B"); ok {
		t.Error("departed id still indexed")
	}
	if rank, ok := e.Rank("D"); !ok || rank != 2 {
		t.Errorf("Rank(D) = %d ok=%v, want 2", rank, ok)
	}
}

func TestOnlineInsertIndexMatchesView(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	e := New(policyFor(OnlineInsert, 15))

	snapshot := func(n int) []model.Item {
		items := make([]model.Item, n)
		for i := range items {
			items[i] = item(fmt.Sprintf("id-%03d", rng.Intn(60)), int64(rng.Intn(400)))
		}
		// Deduplicate ids; last occurrence wins.
		byID := make(map[string]model.Item, n)
		for _, it := range items {
			byID[it.ID] = it
		}
		out := make([]model.Item, 0, len(byID))
		for _, it := range byID {
			out = append(out, it)
		}
		return out
	}

	e.Build(snapshot(40))
	for round := 0; round < 20; round++ {
		if _, _, err := e.Refresh(snapshot(40)); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}

		view := e.TopK(e.Len())
		for i := 1; i < len(view); i++ {
			if view[i].Before(view[i-1]) {
				t.Fatalf("round %d: view unsorted at %d", round, i)
			}
		}
		for i, k := range view {
			if k.ID == "" {
				t.Fatalf("round %d: sentinel slot visible in view", round)
			}
			rank, ok := e.Rank(k.ID)
			if !ok || rank != i+1 {
				t.Fatalf("round %d: Rank(%s) = %d ok=%v, want %d", round, k.ID, rank, ok, i+1)
			}
		}
	}
}

func TestMultiMetricPriorityOrder(t *testing.T) {
	x := model.Item{ID: "X", Title: "x", Views: 100, Likes: 50}
	y := model.Item{ID: "Y", Title: "y", Views: 100, Likes: 80}

	e := New(Policy{
		Strategy: MultiMetric,
		Sort:     sorting.Quick,
		Select:   topk.Sequential,
		K:        2,
		Metrics:  []model.Metric{model.MetricViews, model.MetricLikes},
	})
	view := e.Build([]model.Item{x, y})

	if !equalIDs(ids(view), "Y", "X") {
		t.Errorf("view = %v, want [Y X]", ids(view))
	}

	tuples := e.TopKMetrics(2)
	if len(tuples) != 2 || tuples[0].ID != "Y" {
		t.Errorf("tuple view = %v", tuples)
	}
}

func TestUpdateScoreArrayStrategies(t *testing.T) {
	for _, s := range []Strategy{FullSort, SelectThenSort, OnlineInsert} {
		e := New(policyFor(s, 3))
		e.Build([]model.Item{item("A", 100), item("B", 90), item("C", 80)})

		if !e.UpdateScore("C", 150) {
			t.Fatalf("%s: UpdateScore failed for present id", s)
		}
		view := e.TopK(3)
		if !equalIDs(ids(view), "C", "A", "B") {
			t.Errorf("%s: view after update = %v, want [C A B]", s, ids(view))
		}
		if e.UpdateScore("Z", 1) {
			t.Errorf("%s: UpdateScore succeeded for absent id", s)
		}
	}
}

func TestUpdateScoreRejectedByNonArrayStrategies(t *testing.T) {
	for _, s := range []Strategy{OrderStatisticsTree, MultiMetric} {
		e := New(policyFor(s, 3))
		e.Build([]model.Item{item("A", 100), item("B", 90)})
		if e.UpdateScore("A", 1) {
			t.Errorf("%s: UpdateScore must be unsupported", s)
		}
	}
}

func TestPrevTopKHoldsPreRefreshView(t *testing.T) {
	e := New(policyFor(FullSort, 3))
	e.Build([]model.Item{item("A", 100), item("B", 90)})

	if got := e.PrevTopK(3); got != nil {
		t.Errorf("prev view before any refresh = %v, want nil", got)
	}

	if _, _, err := e.Refresh([]model.Item{item("A", 100), item("B", 990)}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	prev := e.PrevTopK(3)
	if !equalIDs(ids(prev), "A", "B") {
		t.Errorf("prev view = %v, want [A B]", ids(prev))
	}
	cur := e.TopK(3)
	if !equalIDs(ids(cur), "B", "A") {
		t.Errorf("current view = %v, want [B A]", ids(cur))
	}
}

func TestTopKClampsRequest(t *testing.T) {
	e := New(policyFor(FullSort, 5))
	e.Build([]model.Item{item("A", 3), item("B", 2), item("C", 1)})

	if got := e.TopK(-1); got != nil {
		t.Errorf("TopK(-1) = %v, want nil", got)
	}
	if got := e.TopK(2); len(got) != 2 {
		t.Errorf("TopK(2) size = %d", len(got))
	}
	if got := e.TopK(100); len(got) != 3 {
		t.Errorf("TopK(100) size = %d, want 3", len(got))
	}
}

func TestMappingWritesIndexDirectly(t *testing.T) {
	e := New(policyFor(FullSort, 3))
	e.Build([]model.Item{item("A", 100), item("B", 90)})

	e.Mapping("B", 0)
	rank, ok := e.Rank("B")
	if !ok || rank != 1 {
		t.Errorf("Rank(B) after Mapping = %d ok=%v, want 1", rank, ok)
	}
}

func TestHistoryRecordsPasses(t *testing.T) {
	h := NewHistory(10)
	e := New(policyFor(FullSort, 3), WithHistory(h))
	e.Build([]model.Item{item("A", 1)})
	if _, _, err := e.Refresh([]model.Item{item("A", 2)}); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	records := h.Records()
	if len(records) != 2 {
		t.Fatalf("history length = %d, want 2", len(records))
	}
	if records[0].Op != "build" || records[1].Op != "refresh" {
		t.Errorf("ops = %s, %s", records[0].Op, records[1].Op)
	}
}

func TestParseStrategy(t *testing.T) {
	for s := FullSort; s <= MultiMetric; s++ {
		got, ok := ParseStrategy(s.String())
		if !ok || got != s {
			t.Errorf("round trip failed for %s", s)
		}
	}
	if _, ok := ParseStrategy("bogus"); ok {
		t.Error("expected unknown name to fail")
	}
}
