package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB backs the fakes, which never issue SQL of their own. Only the
// transaction boundaries reach the mock, in any order.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 64; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeBookingRepo serves the sweep and the stats queries.
type fakeBookingRepo struct {
	mu sync.Mutex

	stays        []entity.Booking
	staysErr     error
	completeRows map[uuid.UUID]int64
	completeErr  map[uuid.UUID]error
	completed    []entity.Booking
	completedCh  chan struct{}

	statusCounts  map[entity.BookingStatus]int64
	paymentCounts map[entity.PaymentStatus]int64
	total         int64
	today         int64
	sumFilters    []entity.PaymentSumFilter
	sumToday      decimal.Decimal
	sumAll        decimal.Decimal
	countErr      error
	createdFrom   time.Time
	createdTo     time.Time
}

func (r *fakeBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	return errors.New("not used")
}

func (r *fakeBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	return nil, errors.New("not used")
}

func (r *fakeBookingRepo) FindAll(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r *fakeBookingRepo) UpdateFields(db *gorm.DB, booking *entity.Booking, fields ...string) (int64, error) {
	return 0, errors.New("not used")
}

func (r *fakeBookingRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, errors.New("not used")
}

func (r *fakeBookingRepo) FindActiveStays(db *gorm.DB) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staysErr != nil {
		return nil, r.staysErr
	}
	out := make([]entity.Booking, len(r.stays))
	copy(out, r.stays)
	return out, nil
}

func (r *fakeBookingRepo) CompleteStay(db *gorm.DB, booking *entity.Booking) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.completeErr[booking.ID]; err != nil {
		return 0, err
	}
	rows := int64(1)
	if n, ok := r.completeRows[booking.ID]; ok {
		rows = n
	}
	if rows > 0 {
		r.completed = append(r.completed, *booking)
		if r.completedCh != nil {
			select {
			case r.completedCh <- struct{}{}:
			default:
			}
		}
	}
	return rows, nil
}

func (r *fakeBookingRepo) CountByStatus(db *gorm.DB, status entity.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusCounts[status], r.countErr
}

func (r *fakeBookingRepo) CountByPaymentStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paymentCounts[status], nil
}

func (r *fakeBookingRepo) CountCreatedBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createdFrom, r.createdTo = from, to
	return r.today, nil
}

func (r *fakeBookingRepo) CountAll(db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total, nil
}

func (r *fakeBookingRepo) SumPaidAmount(db *gorm.DB, filter *entity.PaymentSumFilter) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sumFilters = append(r.sumFilters, *filter)
	if filter.PaidFrom != nil {
		return r.sumToday, nil
	}
	return r.sumAll, nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
	err  error
}

func (r *fakeAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditRepo) FindAll(db *gorm.DB, page, limit int) ([]entity.AuditLog, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r *fakeAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return nil, errors.New("not used")
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []BookingEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}
