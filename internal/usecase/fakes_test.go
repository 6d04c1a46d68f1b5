package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return fixedNow }

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

// newTxTestDB backs the in-memory fakes, which never issue SQL of their own.
// Only the transaction boundaries reach the mock, in any order.
func newTxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 64; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var testRules = entity.HouseRules{Location: time.UTC, CheckInHour: 11, CheckOutHour: 11}

// fakeBookingRepo keeps bookings by value so callers never share a pointer with it.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]entity.Booking
	updates  [][]string
	findErr  error
	writeErr error
	lastList *entity.BookingFilter
}

func newFakeBookingRepo(bookings ...entity.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: map[uuid.UUID]entity.Booking{}}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) get(id uuid.UUID) entity.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id]
}

func (r *fakeBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) FindAll(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = filter
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.IsArchived != filter.Archived {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) UpdateFields(db *gorm.DB, booking *entity.Booking, fields ...string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return 0, r.writeErr
	}
	if _, ok := r.bookings[booking.ID]; !ok {
		return 0, nil
	}
	r.updates = append(r.updates, fields)
	r.bookings[booking.ID] = *booking
	return 1, nil
}

func (r *fakeBookingRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return 0, nil
	}
	delete(r.bookings, id)
	return 1, nil
}

func (r *fakeBookingRepo) FindActiveStays(db *gorm.DB) ([]entity.Booking, error) {
	return nil, errors.New("not used")
}

func (r *fakeBookingRepo) CompleteStay(db *gorm.DB, booking *entity.Booking) (int64, error) {
	return 0, errors.New("not used")
}

func (r *fakeBookingRepo) CountByStatus(db *gorm.DB, status entity.BookingStatus) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) CountByPaymentStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) CountCreatedBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) CountAll(db *gorm.DB) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) SumPaidAmount(db *gorm.DB, filter *entity.PaymentSumFilter) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type auditCall struct {
	actorID   *uuid.UUID
	action    string
	bookingID uuid.UUID
	oldValue  interface{}
	newValue  interface{}
}

type fakeAuditService struct {
	mu    sync.Mutex
	calls []auditCall
	err   error
}

func (f *fakeAuditService) LogBookingChange(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue, newValue interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, auditCall{actorID: actorID, action: action, bookingID: bookingID, oldValue: oldValue, newValue: newValue})
	return f.err
}

func (f *fakeAuditService) LogUserAction(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, details entity.JSON) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, auditCall{actorID: &userID, action: action})
	return f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []service.BookingEvent
}

func (f *fakeNotifier) Notify(ctx context.Context, event service.BookingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}
