package activity

import (
	"github.com/asaskevich/EventBus"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const topic = "bao:activity"

// Publisher is what use cases need to announce a mutation.
type Publisher interface {
	Publish(e Event)
}

// Bus fans mutation events out to in-process subscribers. Subscribers run synchronously
// in Publish, so a reload right after a mutation already sees invalidated caches.
type Bus struct {
	bus    EventBus.Bus
	logger logger.ZapLogger
}

func NewBus(log logger.ZapLogger) *Bus {
	return &Bus{
		bus:    EventBus.New(),
		logger: log,
	}
}

func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.logger.Debug("activity",
		zap.String("event_id", e.ID),
		zap.String("kind", string(e.Kind)),
		zap.String("entity", string(e.Entity)),
		zap.Int64("entity_id", e.EntityID),
	)
	b.bus.Publish(topic, e)
}

func (b *Bus) Subscribe(fn func(Event)) error {
	if err := b.bus.Subscribe(topic, fn); err != nil {
		return errors.Wrap(err, "subscribe activity")
	}
	return nil
}
