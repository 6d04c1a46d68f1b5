package repository

import (
	"testing"
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestBookingFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "room_type", "status", "payment_status", "paid_amount"}).
		AddRow(id.String(), "Asha Rao", "Deluxe Room", "confirmed", "partial", "2500.00")
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).WillReturnRows(rows)

	booking, err := repo.FindByID(db, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if booking == nil || booking.ID != id || booking.Status != entity.BookingStatusConfirmed {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if !booking.PaidAmount.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("unexpected paid amount %s", booking.PaidAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	booking, err := repo.FindByID(db, uuid.New())
	if err != nil || booking != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", booking, err)
	}
}

func TestBookingFindAllDefaultView(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE is_archived = \$1 AND status = \$2`).
		WithArgs(false, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE is_archived = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(false, "pending", 5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(uuid.NewString(), "pending").
			AddRow(uuid.NewString(), "pending"))

	bookings, total, err := repo.FindAll(db, &entity.BookingFilter{Status: entity.BookingStatusPending, Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if total != 12 || len(bookings) != 2 {
		t.Fatalf("expected 2 of 12, got %d of %d", len(bookings), total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingFindAllArchivedOrdersByUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE is_archived = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE is_archived = \$1 ORDER BY updated_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, _, err := repo.FindAll(db, &entity.BookingFilter{Archived: true, Page: 1, Limit: 10}); err != nil {
		t.Fatalf("find all: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingFindActiveStays(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE actual_check_in IS NOT NULL AND actual_check_out IS NULL AND status IN \(\$1,\$2\) ORDER BY check_out ASC`).
		WithArgs("pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "actual_check_in"}).AddRow(uuid.NewString(), time.Now()))

	stays, err := repo.FindActiveStays(db)
	if err != nil {
		t.Fatalf("find active stays: %v", err)
	}
	if len(stays) != 1 || stays[0].ActualCheckIn == nil {
		t.Fatalf("unexpected stays %+v", stays)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCompleteStayIsConditional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()
	now := time.Now()
	booking := &entity.Booking{ID: uuid.New(), Status: entity.BookingStatusCompleted, ActualCheckOut: &now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .* WHERE id = \$\d+ AND actual_check_out IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.CompleteStay(db, booking)
	if err != nil {
		t.Fatalf("complete stay: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows for an already departed guest, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE status = \$1`).
		WithArgs("cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByStatus(db, entity.BookingStatusCancelled)
	if err != nil || count != 3 {
		t.Fatalf("expected 3, got %d (%v)", count, err)
	}
}

func TestBookingSumPaidAmount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(paid_amount\), 0\) FROM "bookings" WHERE payment_status IN \(\$1,\$2\) AND paid_at >= \$3 AND paid_at < \$4`).
		WithArgs("paid", "partial", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("7500.50"))

	total, err := repo.SumPaidAmount(db, &entity.PaymentSumFilter{
		Statuses: []entity.PaymentStatus{entity.PaymentStatusPaid, entity.PaymentStatusPartial},
		PaidFrom: &from,
		PaidTo:   &to,
	})
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("7500.50")) {
		t.Fatalf("unexpected total %s", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
