// Package event publishes storefront domain events. Publishing is always
// non-fatal for the request that triggered it; a broker outage must never
// break a shopper's session.
package event

import (
	"context"
	"log/slog"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/pkg/kafka"
	"github.com/rechevshop/storefront/pkg/logger"
)

// Topic names for storefront events.
const (
	TopicVehicleSelected = "storefront.vehicle.selected"
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicOrderSubmitted  = "storefront.order.submitted"
)

const source = "storefront"

// Producer is the subset of the Kafka producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Publisher emits domain events for downstream consumers (analytics,
// abandoned-cart jobs).
type Publisher struct {
	producer Producer
	logger   *slog.Logger
}

// NewPublisher creates an event publisher.
func NewPublisher(producer Producer, log *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: log}
}

// VehicleSelectedData is the payload for a vehicle selection event.
type VehicleSelectedData struct {
	SessionID string `json:"session_id"`
	Brand     string `json:"brand"`
	Model     string `json:"model,omitempty"`
	Year      int    `json:"year,omitempty"`
	FuelType  string `json:"fuel_type,omitempty"`
	ViaLookup bool   `json:"via_lookup"`
}

// CartUpdatedData is the payload for cart mutation events.
type CartUpdatedData struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

// OrderSubmittedData is the payload for a completed checkout handoff.
type OrderSubmittedData struct {
	SessionID string `json:"session_id"`
	OrderID   int64  `json:"order_id"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

// VehicleSelected publishes a vehicle selection event.
func (p *Publisher) VehicleSelected(ctx context.Context, sessionID string, v *domain.Vehicle, viaLookup bool) {
	p.publish(ctx, TopicVehicleSelected, "vehicle.selected", sessionID, "session", VehicleSelectedData{
		SessionID: sessionID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		FuelType:  v.FuelType,
		ViaLookup: viaLookup,
	})
}

// CartUpdated publishes a cart mutation event with the cart's new totals.
func (p *Publisher) CartUpdated(ctx context.Context, cart *domain.Cart) {
	p.publish(ctx, TopicCartUpdated, "cart.updated", cart.SessionID, "cart", CartUpdatedData{
		SessionID: cart.SessionID,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total().String(),
	})
}

// CartCleared publishes a cart cleared event.
func (p *Publisher) CartCleared(ctx context.Context, sessionID string) {
	p.publish(ctx, TopicCartCleared, "cart.cleared", sessionID, "cart", CartUpdatedData{
		SessionID: sessionID,
	})
}

// OrderSubmitted publishes an order handoff event.
func (p *Publisher) OrderSubmitted(ctx context.Context, sessionID string, conf *domain.OrderConfirmation, itemCount int) {
	p.publish(ctx, TopicOrderSubmitted, "order.submitted", sessionID, "order", OrderSubmittedData{
		SessionID: sessionID,
		OrderID:   conf.OrderID,
		Total:     conf.Total,
		ItemCount: itemCount,
	})
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}
	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		// Logged by the producer as well; the request proceeds.
		p.logger.WarnContext(ctx, "event publish failed",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
		)
	}
}
