package usecase

import (
	"hotel-ortus/internal/domain/entity"
)

// TransitionGuard vets a command against the booking's current state before the
// entity applies it.
type TransitionGuard interface {
	AllowStatus(b *entity.Booking, to entity.BookingStatus) error
	AllowPayment(b *entity.Booking, to entity.PaymentStatus) error
	AllowArrival(b *entity.Booking) error
}

type permissiveGuard struct{}

func (permissiveGuard) AllowStatus(*entity.Booking, entity.BookingStatus) error { return nil }
func (permissiveGuard) AllowPayment(*entity.Booking, entity.PaymentStatus) error { return nil }
func (permissiveGuard) AllowArrival(*entity.Booking) error { return nil }

// strictGuard follows the transition table. Marking paid and recording an arrival
// both imply a move to confirmed, so they are checked as that transition.
type strictGuard struct{}

func (strictGuard) AllowStatus(b *entity.Booking, to entity.BookingStatus) error {
	if entity.CanTransition(b.Status, to) {
		return nil
	}
	if b.IsCancelled() {
		return ErrBookingCancelled
	}
	return ErrInvalidTransition
}

func (g strictGuard) AllowPayment(b *entity.Booking, to entity.PaymentStatus) error {
	if to != entity.PaymentStatusPaid {
		return nil
	}
	return g.AllowStatus(b, entity.BookingStatusConfirmed)
}

func (g strictGuard) AllowArrival(b *entity.Booking) error {
	return g.AllowStatus(b, entity.BookingStatusConfirmed)
}
