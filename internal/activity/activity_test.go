package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		"Order #12 status changed to claimed": KindStatusChanged,
		"Updated order status changed":        KindStatusChanged,
		"Deleted product PE Shirt":            KindDeleted,
		"Student record created":              KindCreated,
		"Product price updated":               KindUpdated,
		"Someone logged in":                   KindOther,
	}
	for desc, want := range cases {
		assert.Equal(t, want, Classify(desc), desc)
	}
}

func TestKindColor(t *testing.T) {
	assert.Equal(t, "red", KindDeleted.Color())
	assert.Equal(t, "green", KindCreated.Color())
	assert.Equal(t, "gray", KindOther.Color())
}

func TestParseKindAndEntity(t *testing.T) {
	k, ok := ParseKind("status_changed")
	assert.True(t, ok)
	assert.Equal(t, KindStatusChanged, k)

	_, ok = ParseKind("renamed")
	assert.False(t, ok)

	e, ok := ParseEntity("orders")
	assert.True(t, ok)
	assert.Equal(t, EntityOrder, e)
}

func TestFeedKeepsNewestFirst(t *testing.T) {
	f := NewFeed(3)
	for i := 1; i <= 5; i++ {
		f.Record(NewEvent(KindCreated, EntityProduct, int64(i), fmt.Sprintf("Product %d created", i)))
	}

	recent := f.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, []int64{5, 4, 3}, []int64{recent[0].EntityID, recent[1].EntityID, recent[2].EntityID})
	assert.Len(t, f.Recent(2), 2)
	assert.Empty(t, NewFeed(3).Recent(5))
}

func TestBusInvalidatesCacheSynchronously(t *testing.T) {
	ctx := context.Background()
	store := cache.NewStore(cache.NewMemoryBackend(), time.Minute, logger.NewNop())
	bus := NewBus(logger.NewNop())
	feed := NewFeed(10)
	require.NoError(t, Wire(bus, feed, store, logger.NewNop()))

	calls := 0
	fetch := func(context.Context) ([]int, error) {
		calls++
		return []int{calls}, nil
	}
	_, err := cache.Load(ctx, store, cache.KeyOrders, fetch)
	require.NoError(t, err)

	bus.Publish(NewEvent(KindCreated, EntityStudent, 1, "Student created"))
	_, err = cache.Load(ctx, store, cache.KeyOrders, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "student events leave orders cached")

	bus.Publish(NewEvent(KindStatusChanged, EntityOrder, 3, "Order status changed"))
	got, err := cache.Load(ctx, store, cache.KeyOrders, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got)

	assert.Len(t, feed.Recent(0), 2)
}

func TestCollections(t *testing.T) {
	assert.Contains(t, Collections(EntityProduct), cache.KeyUniforms)
	assert.Equal(t, []string{cache.KeyUniforms}, Collections(EntityUniform))
	assert.Empty(t, Collections(Entity("Appointment")))
}
