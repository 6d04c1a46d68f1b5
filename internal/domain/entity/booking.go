package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the administrative lifecycle stage of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the state of the booking's payment sub-ledger
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Presence errors are returned by the entity itself; they are not advisory.
var (
	ErrAlreadyCheckedIn  = errors.New("guest has already checked in")
	ErrAlreadyCheckedOut = errors.New("guest has already checked out")
	ErrNotCheckedInYet   = errors.New("guest has not checked in yet")
)

// Booking represents a guest's room reservation
type Booking struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	Email            string          `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone            string          `gorm:"type:varchar(20);not null" json:"phone"`
	RoomType         RoomType        `gorm:"type:varchar(50);not null" json:"room_type"`
	CheckIn          time.Time       `gorm:"type:date;not null;index" json:"check_in"`
	CheckOut         time.Time       `gorm:"type:date;not null;index" json:"check_out"`
	Guests           int             `gorm:"not null;default:2" json:"guests"`
	SpecialRequests  string          `gorm:"type:text;not null;default:''" json:"special_requests"`
	Status           BookingStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNotes       string          `gorm:"type:text;not null;default:''" json:"admin_notes"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid';index" json:"payment_status"`
	PaymentAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"payment_amount"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	ActualCheckIn    *time.Time      `json:"actual_check_in,omitempty"`
	ActualCheckOut   *time.Time      `json:"actual_check_out,omitempty"`
	IsArchived       bool            `gorm:"not null;default:false;index" json:"is_archived"`
	OriginalCheckOut *time.Time      `gorm:"type:date" json:"original_check_out,omitempty"`
	ExtendedBy       int             `gorm:"not null;default:0" json:"extended_by"`
	CreatedAt        time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// ParsePaymentStatus validates a raw payment status value
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusRefunded:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown payment status: %s", s)
	}
}

// allowedTransitions is only consulted in strict mode. Same-state writes are always allowed.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending:   {BookingStatusConfirmed: true, BookingStatusCancelled: true},
	BookingStatusConfirmed: {BookingStatusCompleted: true, BookingStatusCancelled: true},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsCheckedIn reports whether the guest has physically arrived
func (b *Booking) IsCheckedIn() bool {
	return b.ActualCheckIn != nil
}

// IsCheckedOut reports whether the guest has physically departed
func (b *Booking) IsCheckedOut() bool {
	return b.ActualCheckOut != nil
}

// IsActiveStay reports an ongoing stay: arrived and not yet departed.
func (b *Booking) IsActiveStay() bool {
	return b.IsCheckedIn() && !b.IsCheckedOut()
}

// Nights is the number of nights between the reserved dates, rounded up.
func (b *Booking) Nights() int {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return 0
	}
	return int(math.Ceil(b.CheckOut.Sub(b.CheckIn).Hours() / 24))
}

// SuggestedAmount is nights times the room type's nightly rate.
func (b *Booking) SuggestedAmount() decimal.Decimal {
	return b.RoomType.NightlyRate().Mul(decimal.NewFromInt(int64(b.Nights())))
}

// IsUnderpaid flags a booking marked paid whose collected amount is below the amount due.
func (b *Booking) IsUnderpaid() bool {
	return b.PaymentStatus == PaymentStatusPaid && b.PaidAmount.LessThan(b.PaymentAmount)
}

// CheckInOpensAt is the reserved check-in date at the given local hour.
func (b *Booking) CheckInOpensAt(loc *time.Location, hour int) time.Time {
	return AtLocalHour(b.CheckIn, hour, loc)
}

// CheckOutDeadline is the reserved check-out date at the given local hour.
func (b *Booking) CheckOutDeadline(loc *time.Location, hour int) time.Time {
	return AtLocalHour(b.CheckOut, hour, loc)
}

func (b *Booking) SetStatus(status BookingStatus, now time.Time) {
	b.Status = status
	b.UpdatedAt = now
}

// ApplyPayment overwrites the ledger. Marking paid stamps paidAt and confirms the booking.
func (b *Booking) ApplyPayment(status PaymentStatus, paymentAmount, paidAmount decimal.Decimal, now time.Time) {
	b.PaymentStatus = status
	b.PaymentAmount = paymentAmount
	b.PaidAmount = paidAmount
	if status == PaymentStatusPaid {
		paidAt := now
		b.PaidAt = &paidAt
		b.Status = BookingStatusConfirmed
	}
	b.UpdatedAt = now
}

func (b *Booking) RecordArrival(now time.Time) error {
	if b.IsCheckedIn() {
		return ErrAlreadyCheckedIn
	}
	arrivedAt := now
	b.ActualCheckIn = &arrivedAt
	b.Status = BookingStatusConfirmed
	b.UpdatedAt = now
	return nil
}

func (b *Booking) RecordDeparture(now time.Time) error {
	if !b.IsCheckedIn() {
		return ErrNotCheckedInYet
	}
	if b.IsCheckedOut() {
		return ErrAlreadyCheckedOut
	}
	departedAt := now
	b.ActualCheckOut = &departedAt
	b.Status = BookingStatusCompleted
	b.UpdatedAt = now
	return nil
}

// Extend pushes the reserved check-out by one calendar day during an active stay.
func (b *Booking) Extend(now time.Time) error {
	if !b.IsCheckedIn() {
		return ErrNotCheckedInYet
	}
	if b.IsCheckedOut() {
		return ErrAlreadyCheckedOut
	}
	if b.OriginalCheckOut == nil {
		original := b.CheckOut
		b.OriginalCheckOut = &original
	}
	b.CheckOut = b.CheckOut.AddDate(0, 0, 1)
	b.ExtendedBy++
	b.UpdatedAt = now
	return nil
}

func (b *Booking) Archive(now time.Time) {
	b.IsArchived = true
	b.UpdatedAt = now
}

func (b *Booking) Unarchive(now time.Time) {
	b.IsArchived = false
	b.UpdatedAt = now
}

// AutoCheckout force-completes an overdue stay and appends a note for the front desk.
func (b *Booking) AutoCheckout(now time.Time, loc *time.Location) {
	departedAt := now
	b.ActualCheckOut = &departedAt
	b.Status = BookingStatusCompleted
	b.AdminNotes = AppendNote(b.AdminNotes, fmt.Sprintf("[Auto-checkout at %s]", now.In(loc).Format("02/01/2006, 15:04:05")))
	b.UpdatedAt = now
}

// AppendNote adds a line to free-text notes without leading blank lines.
func AppendNote(notes, line string) string {
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}
