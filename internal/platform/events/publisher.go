package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for booking and payment lifecycle events.
const (
	RKBookingCreated   = "booking.created"
	RKBookingApproved  = "booking.approved"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
	RKBookingExpired   = "booking.expired"
	RKPaymentCaptured  = "payment.captured"
)

type BookingEvent struct {
	BookingID string  `json:"booking_id"`
	UserID    string  `json:"user_id"`
	PackageID string  `json:"package_id"`
	VendorID  string  `json:"vendor_id"`
	Seats     int     `json:"seats,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

type PaymentEvent struct {
	BookingID string `json:"booking_id"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
}

type ExpiryEvent struct {
	PackageIDs []string `json:"package_ids"`
	Bookings   int64    `json:"bookings"`
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishJSON is nil-safe: a nil publisher drops the event so services can
// run without a broker configured.
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
