package engine

import "time"

// Record is one timed build or refresh pass.
type Record struct {
	Strategy string        `json:"strategy"`
	Op       string        `json:"op"`
	Items    int           `json:"items"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	At       time.Time     `json:"at"`
}

// defaultHistoryLimit bounds retained records when no limit is given.
const defaultHistoryLimit = 256

// History collects timing records across ranking passes. It is an
// explicit collector handed to the engine, not process-wide state, so
// two engines never share one by accident.
type History struct {
	limit   int
	records []Record
}

// NewHistory creates a collector retaining at most limit records.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{limit: limit}
}

// Add appends a record, evicting the oldest beyond the limit.
func (h *History) Add(r Record) {
	h.records = append(h.records, r)
	if len(h.records) > h.limit {
		h.records = h.records[len(h.records)-h.limit:]
	}
}

// Len returns the number of retained records.
func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of the retained records, oldest first.
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Average returns the mean elapsed time of retained records for op,
// zero when none match.
func (h *History) Average(op string) time.Duration {
	var total time.Duration
	var n int
	for _, r := range h.records {
		if r.Op == op {
			total += r.Elapsed
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}
