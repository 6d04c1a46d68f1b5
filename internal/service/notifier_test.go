package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/google/uuid"
)

type fakePublisher struct {
	published []string
	payloads  []interface{}
	deadline  bool
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, messageType string, payload interface{}) error {
	_, p.deadline = ctx.Deadline()
	p.published = append(p.published, messageType)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func sampleBooking() *entity.Booking {
	in, _ := entity.ParseDate("2025-06-01")
	out, _ := entity.ParseDate("2025-06-03")
	return &entity.Booking{
		ID:            uuid.New(),
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		RoomType:      entity.RoomTypeExecutive,
		CheckIn:       in,
		CheckOut:      out,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
	}
}

func TestNewBookingEvent(t *testing.T) {
	b := sampleBooking()
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	event := NewBookingEvent(EventBookingSubmitted, b, "New booking request", at)

	if event.BookingID != b.ID.String() || event.RoomType != "Executive Suite" {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.CheckIn != "2025-06-01" || event.CheckOut != "2025-06-03" {
		t.Fatalf("unexpected dates %s - %s", event.CheckIn, event.CheckOut)
	}
	if event.OccurredAt != "2025-06-01T03:30:00Z" {
		t.Fatalf("expected UTC timestamp, got %s", event.OccurredAt)
	}
}

func TestNotifierPublishes(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := NewNotifier(publisher, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.Notify(ctx, NewBookingEvent(EventGuestArrived, sampleBooking(), "", time.Now()))

	if len(publisher.published) != 1 || publisher.published[0] != EventGuestArrived {
		t.Fatalf("expected one %s message, got %v", EventGuestArrived, publisher.published)
	}
	if !publisher.deadline {
		t.Fatal("publishing must be bounded by a timeout")
	}
}

func TestNotifierSwallowsErrors(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker unreachable")}
	notifier := NewNotifier(publisher, newTestLogger())

	notifier.Notify(context.Background(), NewBookingEvent(EventStayExtended, sampleBooking(), "", time.Now()))

	if len(publisher.published) != 1 {
		t.Fatal("expected a publish attempt")
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	notifier := NewNotifier(nil, newTestLogger())
	if _, ok := notifier.(noopNotifier); !ok {
		t.Fatalf("expected noop notifier, got %T", notifier)
	}
	notifier.Notify(context.Background(), NewBookingEvent(EventGuestDeparted, sampleBooking(), "", time.Now()))
}
