package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-ortus/internal/converter"
	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/internal/domain/repository"
	"hotel-ortus/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingLifecycleUsecase applies admin commands to a single booking. Every command
// reads the booking, applies the entity rule, and writes back only the columns it
// touched, so two admins changing different dimensions do not overwrite each other.
type BookingLifecycleUsecase interface {
	SetStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.BookingMutationResponse, error)
	SetPayment(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.BookingMutationResponse, error)
	RecordArrival(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error)
	RecordDeparture(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error)
	Extend(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error)
	Archive(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error)
	Unarchive(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error)
}

// LifecycleOptions are the configurable house policies.
type LifecycleOptions struct {
	// MaxExtensionDays caps extendedBy; 0 means unbounded.
	MaxExtensionDays int
}

type bookingLifecycleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	notifier     service.Notifier
	guard        TransitionGuard
	rules        entity.HouseRules
	opts         LifecycleOptions
	now          func() time.Time
}

// NewBookingLifecycleUsecase returns the permissive lifecycle: any status may be set
// from any status, and payment or arrival always confirm.
func NewBookingLifecycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	notifier service.Notifier,
	rules entity.HouseRules,
	opts LifecycleOptions,
	now func() time.Time,
) BookingLifecycleUsecase {
	return newBookingLifecycleUsecase(db, log, bookingRepo, auditService, notifier, permissiveGuard{}, rules, opts, now)
}

// NewStrictBookingLifecycleUsecase enforces the transition table and treats
// cancelled as terminal.
func NewStrictBookingLifecycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	notifier service.Notifier,
	rules entity.HouseRules,
	opts LifecycleOptions,
	now func() time.Time,
) BookingLifecycleUsecase {
	return newBookingLifecycleUsecase(db, log, bookingRepo, auditService, notifier, strictGuard{}, rules, opts, now)
}

func newBookingLifecycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	notifier service.Notifier,
	guard TransitionGuard,
	rules entity.HouseRules,
	opts LifecycleOptions,
	now func() time.Time,
) *bookingLifecycleUsecase {
	if now == nil {
		now = time.Now
	}
	return &bookingLifecycleUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		notifier:     notifier,
		guard:        guard,
		rules:        rules,
		opts:         opts,
		now:          now,
	}
}

// mutation describes one command: the audit action, the columns it writes and the
// entity change itself. apply returns the user-facing message.
type mutation struct {
	action string
	event  string
	fields []string
	apply  func(b *entity.Booking, now time.Time) (string, error)
}

func (u *bookingLifecycleUsecase) SetStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.BookingMutationResponse, error) {
	status, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	fields := []string{"status", "updated_at"}
	if req.AdminNotes != nil {
		fields = append(fields, "admin_notes")
	}

	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingStatus,
		event:  service.EventBookingStatusChanged,
		fields: fields,
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			if err := u.guard.AllowStatus(b, status); err != nil {
				return "", err
			}
			b.SetStatus(status, now)
			if req.AdminNotes != nil {
				b.AdminNotes = *req.AdminNotes
			}
			return fmt.Sprintf("Booking status updated to %s", status), nil
		},
	}, nil)
}

func (u *bookingLifecycleUsecase) SetPayment(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.BookingMutationResponse, error) {
	paymentStatus, err := entity.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, ErrInvalidPaymentStatus
	}

	paymentAmount := amountOrZero(req.PaymentAmount)
	paidAmount := amountOrZero(req.PaidAmount)
	if paymentAmount.IsNegative() || paidAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	fields := []string{"payment_status", "payment_amount", "paid_amount", "updated_at"}
	if paymentStatus == entity.PaymentStatusPaid {
		fields = append(fields, "paid_at", "status")
	}

	var warnings []string
	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingPayment,
		event:  service.EventBookingPaymentMarked,
		fields: fields,
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			if err := u.guard.AllowPayment(b, paymentStatus); err != nil {
				return "", err
			}
			b.ApplyPayment(paymentStatus, paymentAmount, paidAmount, now)
			if b.IsUnderpaid() {
				warning := fmt.Sprintf("Paid amount %s is less than payment amount %s", paidAmount.StringFixed(2), paymentAmount.StringFixed(2))
				u.log.WithField("booking_id", b.ID).Warn(warning)
				warnings = append(warnings, warning)
			}
			if paymentStatus == entity.PaymentStatusPaid {
				return "Payment recorded and booking confirmed", nil
			}
			return fmt.Sprintf("Payment status updated to %s", paymentStatus), nil
		},
	}, func() []string { return warnings })
}

func (u *bookingLifecycleUsecase) RecordArrival(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error) {
	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingArrival,
		event:  service.EventGuestArrived,
		fields: []string{"actual_check_in", "status", "updated_at"},
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			if err := u.guard.AllowArrival(b); err != nil {
				return "", err
			}
			if err := b.RecordArrival(now); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s checked in to %s", b.Name, b.RoomType), nil
		},
	}, nil)
}

func (u *bookingLifecycleUsecase) RecordDeparture(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error) {
	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingDeparture,
		event:  service.EventGuestDeparted,
		fields: []string{"actual_check_out", "status", "updated_at"},
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			if err := b.RecordDeparture(now); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s checked out of %s", b.Name, b.RoomType), nil
		},
	}, nil)
}

func (u *bookingLifecycleUsecase) Extend(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error) {
	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingExtend,
		event:  service.EventStayExtended,
		fields: []string{"check_out", "original_check_out", "extended_by", "updated_at"},
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			if u.opts.MaxExtensionDays > 0 && b.ExtendedBy >= u.opts.MaxExtensionDays && b.IsActiveStay() {
				return "", ErrExtensionLimitReached
			}
			if err := b.Extend(now); err != nil {
				return "", err
			}
			return fmt.Sprintf("Stay extended by 1 day. New check-out: %s", b.CheckOut.Format(entity.DateLayout)), nil
		},
	}, nil)
}

func (u *bookingLifecycleUsecase) Archive(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error) {
	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingArchive,
		fields: []string{"is_archived", "updated_at"},
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			b.Archive(now)
			return "Booking archived", nil
		},
	}, nil)
}

func (u *bookingLifecycleUsecase) Unarchive(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingMutationResponse, error) {
	return u.execute(ctx, actorID, id, mutation{
		action: entity.AuditActionBookingUnarchive,
		fields: []string{"is_archived", "updated_at"},
		apply: func(b *entity.Booking, now time.Time) (string, error) {
			b.Unarchive(now)
			return "Booking restored from archive", nil
		},
	}, nil)
}

func (u *bookingLifecycleUsecase) execute(ctx context.Context, actorID uuid.UUID, id uuid.UUID, m mutation, warnings func() []string) (*dto.BookingMutationResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, persistenceError(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	now := u.now()
	before := *booking
	message, err := m.apply(booking, now)
	if err != nil {
		return nil, err
	}

	err = db.Session(stampedAt(now)).Transaction(func(tx *gorm.DB) error {
		rows, err := u.bookingRepo.UpdateFields(tx, booking, m.fields...)
		if err != nil {
			u.log.Warnf("Failed to update booking %s (%s): %+v", id, m.action, err)
			return persistenceError(err)
		}
		if rows == 0 {
			// Deleted between the read and the write.
			return ErrBookingNotFound
		}

		if err := u.auditService.LogBookingChange(ctx, tx, &actorID, m.action, booking.ID, &before, booking); err != nil {
			u.log.Warnf("Failed to audit %s on booking %s: %+v", m.action, id, err)
			return persistenceError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if m.event != "" {
		u.notifier.Notify(ctx, service.NewBookingEvent(m.event, booking, message, now))
	}

	result := &dto.BookingMutationResponse{
		Message: message,
		Booking: converter.BookingToResponse(booking, u.rules),
	}
	if warnings != nil {
		result.Warnings = warnings()
	}
	return result, nil
}

// stampedAt makes gorm's autoUpdateTime/autoCreateTime columns use the command's
// clock, so the stored row matches the snapshot returned to the caller.
func stampedAt(now time.Time) *gorm.Session {
	return &gorm.Session{NowFunc: func() time.Time { return now }}
}

func amountOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
