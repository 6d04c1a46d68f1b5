package entity

import "time"

// BookingFilter is a domain-level filter for listing bookings.
// Used by repository layer to avoid coupling with delivery DTOs.
type BookingFilter struct {
	Status   BookingStatus // empty = all statuses
	Archived bool          // false = default view, archived bookings hidden
	Page     int
	Limit    int
}

func (f *BookingFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// PaymentSumFilter narrows a paid-amount aggregate.
type PaymentSumFilter struct {
	Statuses []PaymentStatus
	PaidFrom *time.Time
	PaidTo   *time.Time
}
