package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"hotel-ortus/config"
	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SweepLockKey guards the sweep when several instances share one database.
const SweepLockKey = "booking:auto-checkout:lock"

// releaseLockScript deletes the lock only if this instance still owns it.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SweepResult summarizes one pass over the in-house guests.
type SweepResult struct {
	Scanned   int
	Completed int
	Skipped   int
	Failed    int
}

// AutoCheckoutService completes stays whose check-out deadline has passed.
//
// Ticks are handled by a single goroutine, so a sweep never overlaps itself within
// one process. Across processes a Redis lock (SET NX PX) elects one sweeper per tick;
// without Redis every instance sweeps and the conditional update keeps the write single.
type AutoCheckoutService struct {
	db           *gorm.DB
	redisClient  *redis.Client
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	auditService AuditService
	notifier     Notifier

	rules    entity.HouseRules
	interval time.Duration
	lockTTL  time.Duration
	now      func() time.Time

	sweepMu sync.Mutex

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

func NewAutoCheckoutService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService AuditService,
	notifier Notifier,
	cfg config.BookingConfig,
	rules entity.HouseRules,
) *AutoCheckoutService {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	lockTTL := cfg.SweepLockTTL
	if lockTTL <= 0 || lockTTL > interval {
		lockTTL = interval
	}

	return &AutoCheckoutService{
		db:           db,
		redisClient:  redisClient,
		log:          log,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		notifier:     notifier,
		rules:        rules,
		interval:     interval,
		lockTTL:      lockTTL,
		now:          time.Now,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the periodic sweep. Calling it more than once has no effect.
func (s *AutoCheckoutService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	s.wg.Add(1)
	go s.loop()

	s.log.Infof("Auto-checkout sweep started, interval %v", s.interval)
}

// Stop gracefully shuts down the sweep, waiting for an in-flight pass.
// Safe to call multiple times.
func (s *AutoCheckoutService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Auto-checkout sweep stopped")
	}
}

func (s *AutoCheckoutService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *AutoCheckoutService) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	release, ok := s.acquireLock(ctx)
	if !ok {
		return
	}
	defer release()

	result, err := s.Sweep(ctx, s.now())
	if err != nil {
		s.log.Warnf("Failed to run auto-checkout sweep: %+v", err)
		return
	}
	if result.Completed > 0 || result.Failed > 0 {
		s.log.WithFields(logrus.Fields{
			"scanned":   result.Scanned,
			"completed": result.Completed,
			"skipped":   result.Skipped,
			"failed":    result.Failed,
		}).Info("Auto-checkout sweep finished")
	}
}

// acquireLock returns ok=true when this instance may sweep. With no Redis client
// the lock is a no-op; a Redis outage skips the tick rather than risking a
// double sweep.
func (s *AutoCheckoutService) acquireLock(ctx context.Context) (func(), bool) {
	if s.redisClient == nil {
		return func() {}, true
	}

	token := uuid.NewString()
	acquired, err := s.redisClient.SetNX(ctx, SweepLockKey, token, s.lockTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire auto-checkout lock: %+v", err)
		return nil, false
	}
	if !acquired {
		s.log.Debug("Auto-checkout lock held by another instance, skipping tick")
		return nil, false
	}

	return func() {
		if err := releaseLockScript.Run(context.Background(), s.redisClient, []string{SweepLockKey}, token).Err(); err != nil {
			s.log.Warnf("Failed to release auto-checkout lock: %+v", err)
		}
	}, true
}

// Sweep auto-completes every in-house stay whose deadline (check-out date at the
// check-out hour, hotel time) is at or before now. One failing booking never stops
// the pass; it is logged and picked up again on the next tick.
func (s *AutoCheckoutService) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	var result SweepResult

	stays, err := s.bookingRepo.FindActiveStays(s.db.WithContext(ctx))
	if err != nil {
		return result, fmt.Errorf("find active stays: %w", err)
	}
	result.Scanned = len(stays)

	for i := range stays {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		booking := &stays[i]
		if !s.rules.CheckoutDue(booking, now) {
			continue
		}
		deadline := s.rules.CheckOutDeadline(booking)

		before := *booking
		booking.AutoCheckout(now, s.rules.Location)

		var rows int64
		err := s.db.WithContext(ctx).Session(&gorm.Session{NowFunc: func() time.Time { return now }}).Transaction(func(tx *gorm.DB) error {
			var err error
			rows, err = s.bookingRepo.CompleteStay(tx, booking)
			if err != nil || rows == 0 {
				return err
			}
			if err := s.auditService.LogBookingChange(ctx, tx, nil, entity.AuditActionBookingAutoCheckout, booking.ID, &before, booking); err != nil {
				return fmt.Errorf("audit: %w", err)
			}
			return nil
		})
		if err != nil {
			result.Failed++
			s.log.WithField("booking_id", booking.ID).Warnf("Failed to auto-checkout booking: %+v", err)
			continue
		}
		if rows == 0 {
			// Checked out by the front desk between the read and the write.
			result.Skipped++
			continue
		}
		result.Completed++

		s.log.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"guest":      booking.Name,
			"room_type":  booking.RoomType,
			"deadline":   deadline.Format(time.RFC3339),
		}).Infof("Auto-checked out %s (%s)", booking.Name, booking.RoomType)

		s.notifier.Notify(ctx, NewBookingEvent(EventBookingAutoCheckout, booking, "Guest automatically checked out", now))
	}

	return result, nil
}
