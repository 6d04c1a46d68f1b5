package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateBookingRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Phone           string `json:"phone" validate:"required,min=7,max=20"`
	RoomType        string `json:"room_type" validate:"required,room_type"`
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests          int    `json:"guests" validate:"omitempty,min=1,max=6"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

// UpdateStatusRequest leaves admin notes untouched when admin_notes is omitted.
type UpdateStatusRequest struct {
	Status     string  `json:"status" validate:"required"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// UpdatePaymentRequest amounts default to 0 when omitted.
type UpdatePaymentRequest struct {
	PaymentStatus string           `json:"payment_status" validate:"required"`
	PaymentAmount *decimal.Decimal `json:"payment_amount"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
}

type BookingListRequest struct {
	Status   string
	Archived bool
	Page     int
	Limit    int
}

// Response DTOs

type BookingResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	RoomType         string          `json:"room_type"`
	CheckIn          string          `json:"check_in"`
	CheckOut         string          `json:"check_out"`
	Guests           int             `json:"guests"`
	SpecialRequests  string          `json:"special_requests"`
	Status           string          `json:"status"`
	AdminNotes       string          `json:"admin_notes"`
	PaymentStatus    string          `json:"payment_status"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	PaidAt           *time.Time      `json:"paid_at"`
	ActualCheckIn    *time.Time      `json:"actual_check_in"`
	ActualCheckOut   *time.Time      `json:"actual_check_out"`
	IsArchived       bool            `json:"is_archived"`
	OriginalCheckOut *string         `json:"original_check_out"`
	ExtendedBy       int             `json:"extended_by"`
	Nights           int             `json:"nights"`
	NightlyRate      decimal.Decimal `json:"nightly_rate"`
	SuggestedAmount  decimal.Decimal `json:"suggested_amount"`
	CheckInOpensAt   time.Time       `json:"check_in_opens_at"`
	CheckOutDeadline time.Time       `json:"check_out_deadline"`
	Underpaid        bool            `json:"underpaid"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BookingSubmittedResponse is what the public form gets back; no back-office fields.
type BookingSubmittedResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	RoomType        string          `json:"room_type"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	Guests          int             `json:"guests"`
	Nights          int             `json:"nights"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BookingMutationResponse is the outcome of every lifecycle command.
type BookingMutationResponse struct {
	Message  string           `json:"message"`
	Warnings []string         `json:"warnings,omitempty"`
	Booking  *BookingResponse `json:"booking"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type BookingStatsResponse struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

type PaymentStatsResponse struct {
	TodayCollection decimal.Decimal `json:"today_collection"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	Unpaid          int64           `json:"unpaid"`
	Partial         int64           `json:"partial"`
	Paid            int64           `json:"paid"`
	Refunded        int64           `json:"refunded"`
}

type RoomRateResponse struct {
	RoomType    string          `json:"room_type"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}

type FolioDocument struct {
	Filename string
	Content  []byte
}
