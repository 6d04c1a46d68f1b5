package repository

import (
	"errors"
	"time"

	"hotel-ortus/internal/domain/entity"
	domainRepo "hotel-ortus/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindAll returns one page of bookings plus the total matching count.
// The default view hides archived bookings and shows newest first; the archived
// view is ordered by last change.
func (r *bookingRepository) FindAll(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("is_archived = ?", filter.Archived)
		if filter.Status != "" {
			tx = tx.Where("status = ?", string(filter.Status))
		}
		return tx
	}

	var total int64
	if err := db.Model(&entity.Booking{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Archived {
		order = "updated_at DESC"
	}

	var bookings []entity.Booking
	err := db.Scopes(scope).
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateFields writes only the named columns of booking. Concurrent writers to
// other columns are not clobbered; writers to the same column race (last write wins).
func (r *bookingRepository) UpdateFields(db *gorm.DB, booking *entity.Booking, fields ...string) (int64, error) {
	result := db.Model(booking).Select(fields).Updates(booking)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Booking{})
	return result.RowsAffected, result.Error
}

// FindActiveStays returns bookings whose guest arrived but never departed.
func (r *bookingRepository) FindActiveStays(db *gorm.DB) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("actual_check_in IS NOT NULL AND actual_check_out IS NULL AND status IN ?",
		[]string{string(entity.BookingStatusPending), string(entity.BookingStatusConfirmed)}).
		Order("check_out ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CompleteStay persists an auto-checkout ONLY if the guest has not departed meanwhile.
// Returns affected rows: 1 = completed, 0 = already checked out by someone else.
func (r *bookingRepository) CompleteStay(db *gorm.DB, booking *entity.Booking) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND actual_check_out IS NULL", booking.ID).
		Updates(map[string]interface{}{
			"actual_check_out": booking.ActualCheckOut,
			"status":           string(booking.Status),
			"admin_notes":      booking.AdminNotes,
			"updated_at":       booking.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) CountByStatus(db *gorm.DB, status entity.BookingStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountByPaymentStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).Where("payment_status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountCreatedBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).Where("created_at >= ? AND created_at < ?", from, to).Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).Count(&count).Error
	return count, err
}

func (r *bookingRepository) SumPaidAmount(db *gorm.DB, filter *entity.PaymentSumFilter) (decimal.Decimal, error) {
	query := db.Model(&entity.Booking{}).Select("COALESCE(SUM(paid_amount), 0)")
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("payment_status IN ?", statuses)
	}
	if filter.PaidFrom != nil {
		query = query.Where("paid_at >= ?", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		query = query.Where("paid_at < ?", *filter.PaidTo)
	}

	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
