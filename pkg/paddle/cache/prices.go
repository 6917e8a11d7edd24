// Package cache holds replace-on-refresh read caches over Paddle catalog data
// and webhook secrets. Every cache publishes an immutable map through an
// atomic pointer: readers always see a complete snapshot and never lock.
// Incremental writes copy the current snapshot, mutate the copy, and
// republish; concurrent incremental writers can race and lose (last publish
// wins), which is accepted at webhook update rates.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// PriceCache is a read cache of the vendor price catalog keyed by price ID.
type PriceCache struct {
	client  *client.Client
	perPage int
	data    atomic.Pointer[map[string]types.Price]
}

// NewPriceCache builds an empty cache; call Refresh to populate it.
func NewPriceCache(c *client.Client, perPage int) *PriceCache {
	pc := &PriceCache{client: c, perPage: perPage}
	empty := map[string]types.Price{}
	pc.data.Store(&empty)
	return pc
}

// Refresh rebuilds the whole cache from the vendor API and publishes it
// atomically. On error nothing is published and the previous snapshot stays
// visible.
func (pc *PriceCache) Refresh(ctx context.Context) error {
	fresh := make(map[string]types.Price)
	cursor := ""
	for {
		page, err := pc.client.ListPrices(ctx, cursor, pc.perPage)
		if err != nil {
			return fmt.Errorf("refresh price cache: %w", err)
		}
		for _, p := range page.Items {
			fresh[p.ID] = p
		}
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	pc.data.Store(&fresh)
	slog.Info("Price cache refreshed", slog.Int("prices", len(fresh)))
	return nil
}

// Get returns the cached price with the given ID.
func (pc *PriceCache) Get(id string) (types.Price, bool) {
	p, ok := (*pc.data.Load())[id]
	return p, ok
}

// Len returns the number of cached prices.
func (pc *PriceCache) Len() int {
	return len(*pc.data.Load())
}

// AddPrice publishes a snapshot extended with p. Driven by price
// created/imported webhook events.
func (pc *PriceCache) AddPrice(p types.Price) {
	pc.republish(p)
}

// UpdatePrice publishes a snapshot with p replaced. Driven by price updated
// webhook events.
func (pc *PriceCache) UpdatePrice(p types.Price) {
	pc.republish(p)
}

func (pc *PriceCache) republish(p types.Price) {
	current := *pc.data.Load()
	next := make(map[string]types.Price, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[p.ID] = p
	pc.data.Store(&next)
}
