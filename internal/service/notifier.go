package service

import (
	"context"
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Booking event types published to the notification queue
const (
	EventBookingSubmitted     = "booking.submitted"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingPaymentMarked = "booking.payment_updated"
	EventGuestArrived         = "booking.checked_in"
	EventGuestDeparted        = "booking.checked_out"
	EventStayExtended         = "booking.extended"
	EventBookingAutoCheckout  = "booking.auto_checkout"
)

const notifyTimeout = 3 * time.Second

// BookingEvent carries enough for a consumer to email staff or the guest
// without reading the database.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     string `json:"booking_id"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	RoomType      string `json:"room_type"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Message       string `json:"message,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking *entity.Booking, message string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID.String(),
		GuestName:     booking.Name,
		GuestEmail:    booking.Email,
		RoomType:      string(booking.RoomType),
		CheckIn:       booking.CheckIn.Format(entity.DateLayout),
		CheckOut:      booking.CheckOut.Format(entity.DateLayout),
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		Message:       message,
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
}

// EventPublisher is satisfied by the RabbitMQ publisher.
type EventPublisher interface {
	Publish(ctx context.Context, messageType string, payload interface{}) error
}

// Notifier never fails the caller; delivery problems are only logged.
type Notifier interface {
	Notify(ctx context.Context, event BookingEvent)
}

type queueNotifier struct {
	publisher EventPublisher
	log       *logrus.Logger
}

// NewNotifier returns a no-op notifier when publisher is nil.
func NewNotifier(publisher EventPublisher, log *logrus.Logger) Notifier {
	if publisher == nil {
		return noopNotifier{}
	}
	return &queueNotifier{publisher: publisher, log: log}
}

func (n *queueNotifier) Notify(ctx context.Context, event BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, event.Type, event); err != nil {
		n.log.WithFields(logrus.Fields{
			"event":      event.Type,
			"booking_id": event.BookingID,
		}).Warnf("Failed to publish booking event: %+v", err)
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, BookingEvent) {}
