package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// ProductCache is a read cache of the vendor product catalog keyed by product
// ID. Same publication semantics as PriceCache.
type ProductCache struct {
	client  *client.Client
	perPage int
	data    atomic.Pointer[map[string]types.Product]
}

// NewProductCache builds an empty cache; call Refresh to populate it.
func NewProductCache(c *client.Client, perPage int) *ProductCache {
	pc := &ProductCache{client: c, perPage: perPage}
	empty := map[string]types.Product{}
	pc.data.Store(&empty)
	return pc
}

// Refresh rebuilds the whole cache from the vendor API and publishes it
// atomically.
func (pc *ProductCache) Refresh(ctx context.Context) error {
	fresh := make(map[string]types.Product)
	cursor := ""
	for {
		page, err := pc.client.ListProducts(ctx, cursor, pc.perPage)
		if err != nil {
			return fmt.Errorf("refresh product cache: %w", err)
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
	slog.Info("Product cache refreshed", slog.Int("products", len(fresh)))
	return nil
}

// Get returns the cached product with the given ID.
func (pc *ProductCache) Get(id string) (types.Product, bool) {
	p, ok := (*pc.data.Load())[id]
	return p, ok
}

// Len returns the number of cached products.
func (pc *ProductCache) Len() int {
	return len(*pc.data.Load())
}

// AddProduct publishes a snapshot extended with p.
func (pc *ProductCache) AddProduct(p types.Product) {
	pc.republish(p)
}

// UpdateProduct publishes a snapshot with p replaced.
func (pc *ProductCache) UpdateProduct(p types.Product) {
	pc.republish(p)
}

func (pc *ProductCache) republish(p types.Product) {
	current := *pc.data.Load()
	next := make(map[string]types.Product, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[p.ID] = p
	pc.data.Store(&next)
}
