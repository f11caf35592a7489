package listener

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// MessageReader is the part of *kafka.Reader the listener uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

func NewKafkaReader(cfg *Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// ActivityListener republishes server-emitted mutation events on the local bus, so other
// consoles' changes invalidate this one's cache and show up in the feed.
type ActivityListener struct {
	reader    MessageReader
	publisher activity.Publisher
	logger    logger.ZapLogger
	backoff   time.Duration
}

func NewActivityListener(reader MessageReader, publisher activity.Publisher, log logger.ZapLogger) *ActivityListener {
	return &ActivityListener{
		reader:    reader,
		publisher: publisher,
		logger:    log,
		backoff:   time.Second,
	}
}

func (l *ActivityListener) Start(ctx context.Context) {
	l.logger.Info("Starting activity Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping activity Kafka listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(msg.Value)
		}
	}
}

type MutationEvent struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	Entity      string          `json:"entity"`
	EntityID    interface{}     `json:"entity_id"`
	Description string          `json:"description"`
	Timestamp   model.Timestamp `json:"timestamp"`
}

func (l *ActivityListener) processMessage(value []byte) {
	e, ok := l.decode(value)
	if !ok {
		return
	}
	l.publisher.Publish(e)
}

func (l *ActivityListener) decode(value []byte) (activity.Event, bool) {
	var msg MutationEvent
	if err := json.Unmarshal(value, &msg); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return activity.Event{}, false
	}

	entity, ok := activity.ParseEntity(msg.Entity)
	if !ok {
		l.logger.Debug("Ignoring event for unknown entity", zap.String("entity", msg.Entity))
		return activity.Event{}, false
	}

	kind, ok := activity.ParseKind(msg.EventType)
	if !ok {
		kind = activity.Classify(msg.Description)
	}

	id, err := entityID(msg.EntityID)
	if err != nil {
		l.logger.Warn("Event carries a non-numeric entity id", zap.Any("entity_id", msg.EntityID))
	}

	e := activity.NewEvent(kind, entity, id, msg.Description)
	if msg.EventID != "" {
		e.ID = msg.EventID
	}
	if !msg.Timestamp.IsZero() {
		e.At = msg.Timestamp.Time
	}
	return e, true
}

// entityID reads numeric ids as sent and string ids as decimal.
func entityID(v interface{}) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(v)
}
