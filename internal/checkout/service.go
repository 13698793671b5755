package checkout

import (
	"context"
	"time"

	"github.com/futurewear/storefront/internal/cart"
	"github.com/futurewear/storefront/internal/kafka"
	"github.com/futurewear/storefront/internal/orders"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// DeliveryCharge is the flat per-order shipping fee, destination-independent.
const DeliveryCharge = 140

// Submitter persists an assembled order. *orders.Repo is the production
// implementation; tests use an in-memory one.
type Submitter interface {
	Insert(ctx context.Context, o orders.Order) error
}

// Publisher emits order events. *kafka.Producer is the production
// implementation.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Orders         Submitter
	Producer       Publisher // optional
	ServiceName    string
	DeliveryCharge int // 0 means DeliveryCharge
}

// PlaceOrder turns a non-empty cart plus customer info into an immutable
// order and clears the cart. The two steps are one logical transaction from
// the caller's point of view: on any error the cart is left untouched and
// nothing is persisted; on success the returned order is already stored and
// the cart is empty.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Cart, info orders.CustomerInfo, coupon, userID string) (orders.Order, error) {
	if c.Len() == 0 {
		return orders.Order{}, ErrEmptyCart
	}
	if verr := Validate(info); verr != nil {
		return orders.Order{}, verr
	}

	charge := s.DeliveryCharge
	if charge == 0 {
		charge = DeliveryCharge
	}
	subtotal := c.Subtotal()
	o := orders.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          c.Snapshot(),
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          subtotal + charge,
		CouponCode:     coupon,
		Status:         orders.StatusPending,
		Customer:       info,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Orders.Insert(ctx, o); err != nil {
		return orders.Order{}, err
	}
	c.Clear()

	s.publishPlaced(o)
	return o, nil
}

func (s *Service) publishPlaced(o orders.Order) {
	if s.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: o.ID,
		Payload: kafka.MustMarshal(orders.OrderPlacedPayload{
			OrderID:        o.ID,
			UserID:         o.UserID,
			Items:          o.Items,
			Subtotal:       o.Subtotal,
			DeliveryCharge: o.DeliveryCharge,
			Total:          o.Total,
		}),
	}
	s.Producer.Publish(orders.PartitionKey(o.ID), kafka.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
