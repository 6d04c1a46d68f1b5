package repository

import (
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindAll(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, int64, error)
	UpdateFields(db *gorm.DB, booking *entity.Booking, fields ...string) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)

	FindActiveStays(db *gorm.DB) ([]entity.Booking, error)
	CompleteStay(db *gorm.DB, booking *entity.Booking) (int64, error)

	CountByStatus(db *gorm.DB, status entity.BookingStatus) (int64, error)
	CountByPaymentStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error)
	CountCreatedBetween(db *gorm.DB, from, to time.Time) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	SumPaidAmount(db *gorm.DB, filter *entity.PaymentSumFilter) (decimal.Decimal, error)
}
