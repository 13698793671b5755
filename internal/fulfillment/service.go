package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkax "github.com/futurewear/storefront/internal/kafka"
	"github.com/futurewear/storefront/internal/orders"
	"github.com/futurewear/storefront/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service picks up freshly placed orders and moves them into processing.
type Service struct {
	Repo        *orders.Repo
	Redis       *redis.Client
	Producer    *kafkax.Producer // publishes order.status.changed
	ServiceName string
}

// HandleOrderPlaced is wired as the consumer handler for order.placed.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup on event_id so redelivery is harmless
	dkey := fmt.Sprintf(redisx.KeyDedup, "fulfillment", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	from, err := s.Repo.Advance(ctx, p.OrderID, orders.StatusProcessing)
	if err != nil {
		// already past PENDING means an earlier delivery won the race
		if from == orders.StatusProcessing || from == orders.StatusShipped || from == orders.StatusDelivered {
			return nil
		}
		return err
	}

	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, p.OrderID)
	_ = s.Redis.Set(ctx, statusKey, `{"status":"PROCESSING"}`, redisx.TTLStatusCache).Err()

	s.publishStatusChanged(p.OrderID, from, orders.StatusProcessing, env.TraceID)
	return nil
}

func (s *Service) publishStatusChanged(orderID string, from, to orders.Status, trace string) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(orders.OrderStatusChangedPayload{
			OrderID: orderID, From: from, To: to,
		}),
	}
	s.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
