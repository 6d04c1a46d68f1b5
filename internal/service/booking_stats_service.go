package service

import (
	"context"
	"fmt"
	"time"

	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

type BookingStats struct {
	Total     int64
	Today     int64
	Pending   int64
	Confirmed int64
	Cancelled int64
	Completed int64
}

type PaymentStats struct {
	TodayCollection decimal.Decimal
	TotalRevenue    decimal.Decimal
	Unpaid          int64
	Partial         int64
	Paid            int64
	Refunded        int64
}

// collectedStatuses are the payment states whose paid amount counts as revenue.
var collectedStatuses = []entity.PaymentStatus{entity.PaymentStatusPaid, entity.PaymentStatusPartial}

// BookingStatsService runs the dashboard aggregates concurrently.
type BookingStatsService interface {
	BookingStats(ctx context.Context, now time.Time) (*BookingStats, error)
	PaymentStats(ctx context.Context, now time.Time) (*PaymentStats, error)
}

type bookingStatsService struct {
	db          *gorm.DB
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	rules       entity.HouseRules
}

func NewBookingStatsService(db *gorm.DB, log *logrus.Logger, bookingRepo repository.BookingRepository, rules entity.HouseRules) BookingStatsService {
	return &bookingStatsService{
		db:          db,
		log:         log,
		bookingRepo: bookingRepo,
		rules:       rules,
	}
}

func (s *bookingStatsService) BookingStats(ctx context.Context, now time.Time) (*BookingStats, error) {
	stats := &BookingStats{}
	from, to := s.todayBounds(now)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		stats.Total, err = s.bookingRepo.CountAll(s.db.WithContext(ctx))
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.Today, err = s.bookingRepo.CountCreatedBetween(s.db.WithContext(ctx), from, to)
		return err
	})
	for status, dst := range map[entity.BookingStatus]*int64{
		entity.BookingStatusPending:   &stats.Pending,
		entity.BookingStatusConfirmed: &stats.Confirmed,
		entity.BookingStatusCancelled: &stats.Cancelled,
		entity.BookingStatusCompleted: &stats.Completed,
	} {
		p.Go(func(ctx context.Context) (err error) {
			*dst, err = s.bookingRepo.CountByStatus(s.db.WithContext(ctx), status)
			return err
		})
	}

	if err := p.Wait(); err != nil {
		s.log.Warnf("Failed to compute booking stats: %+v", err)
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	return stats, nil
}

func (s *bookingStatsService) PaymentStats(ctx context.Context, now time.Time) (*PaymentStats, error) {
	stats := &PaymentStats{}
	from, to := s.todayBounds(now)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		stats.TodayCollection, err = s.bookingRepo.SumPaidAmount(s.db.WithContext(ctx), &entity.PaymentSumFilter{
			Statuses: collectedStatuses,
			PaidFrom: &from,
			PaidTo:   &to,
		})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.TotalRevenue, err = s.bookingRepo.SumPaidAmount(s.db.WithContext(ctx), &entity.PaymentSumFilter{
			Statuses: collectedStatuses,
		})
		return err
	})
	for status, dst := range map[entity.PaymentStatus]*int64{
		entity.PaymentStatusUnpaid:   &stats.Unpaid,
		entity.PaymentStatusPartial:  &stats.Partial,
		entity.PaymentStatusPaid:     &stats.Paid,
		entity.PaymentStatusRefunded: &stats.Refunded,
	} {
		p.Go(func(ctx context.Context) (err error) {
			*dst, err = s.bookingRepo.CountByPaymentStatus(s.db.WithContext(ctx), status)
			return err
		})
	}

	if err := p.Wait(); err != nil {
		s.log.Warnf("Failed to compute payment stats: %+v", err)
		return nil, fmt.Errorf("payment stats: %w", err)
	}
	return stats, nil
}

// todayBounds is [local midnight, next local midnight) for the hotel's current day.
func (s *bookingStatsService) todayBounds(now time.Time) (time.Time, time.Time) {
	from := entity.AtLocalHour(s.rules.Today(now), 0, s.rules.Location)
	return from, from.AddDate(0, 0, 1)
}
