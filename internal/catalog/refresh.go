package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher periodically pulls the vendor feed into the store. A failed pull
// keeps the previous snapshot; the catalog degrades, it does not go dark.
type Refresher struct {
	Feed     *FeedClient
	Store    Store
	Log      *zap.Logger
	Interval time.Duration
}

func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	products, err := r.Feed.Fetch(ctx)
	if err != nil {
		if r.Log != nil {
			r.Log.Warn("feed refresh failed", zap.Error(err))
		}
		return
	}
	if len(products) == 0 {
		if r.Log != nil {
			r.Log.Warn("feed returned no products, keeping previous snapshot")
		}
		return
	}

	if err := r.Store.ReplaceAll(ctx, products); err != nil {
		if r.Log != nil {
			r.Log.Error("store snapshot failed", zap.Error(err))
		}
		return
	}
	if r.Log != nil {
		r.Log.Info("catalog refreshed", zap.Int("products", len(products)))
	}
}
