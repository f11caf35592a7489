package activity

import (
	"context"

	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"go.uber.org/zap"
)

// collections lists the cached lists an entity change can make stale. Orders and uniform
// variants embed their product, and an order can move product stock on the server.
var collections = map[Entity][]string{
	EntityStudent: {cache.KeyStudents},
	EntityProduct: {cache.KeyProducts, cache.KeyUniforms, cache.KeyOrders},
	EntityOrder:   {cache.KeyOrders, cache.KeyProducts},
	EntityUniform: {cache.KeyUniforms},
}

// Collections returns the cache keys an event on entity invalidates.
func Collections(entity Entity) []string {
	return collections[entity]
}

// Invalidator returns a subscriber that drops the cached collections an event touches.
func Invalidator(store *cache.Store, log logger.ZapLogger) func(Event) {
	return func(e Event) {
		keys := Collections(e.Entity)
		if len(keys) == 0 {
			return
		}
		if err := store.Invalidate(context.Background(), keys...); err != nil {
			log.Warn("failed to invalidate cache", zap.String("entity", string(e.Entity)), zap.Error(err))
		}
	}
}

// Wire subscribes the feed and the cache invalidator to bus.
func Wire(bus *Bus, feed *Feed, store *cache.Store, log logger.ZapLogger) error {
	if err := bus.Subscribe(Invalidator(store, log)); err != nil {
		return err
	}
	return bus.Subscribe(feed.Record)
}
