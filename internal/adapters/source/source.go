// Package source defines the snapshot provider feeding the ranking
// service, plus a synthetic in-process implementation for local runs
// and load tests.
package source

import (
	"context"

	"github.com/okian/trendboard/internal/domain/model"
)

// Provider returns a full item snapshot per refresh cycle. Snapshots
// are already scored and must be returned in a stable item order.
type Provider interface {
	Snapshot(ctx context.Context) ([]model.Item, error)
}
