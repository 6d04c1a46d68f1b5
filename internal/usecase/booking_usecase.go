package usecase

import (
	"context"
	"strings"
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

const (
	defaultGuests    = 2
	maxGuests        = 6
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// BookingUsecase covers public submission, back-office reads, deletion and reports.
// Lifecycle transitions live in BookingLifecycleUsecase.
type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingSubmittedResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, req *dto.BookingListRequest) (*dto.BookingListResponse, error)
	DeleteBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
	GetBookingStats(ctx context.Context) (*dto.BookingStatsResponse, error)
	GetPaymentStats(ctx context.Context) (*dto.PaymentStatsResponse, error)
	GetFolio(ctx context.Context, id uuid.UUID) (*dto.FolioDocument, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	statsService service.BookingStatsService
	folioService service.FolioService
	notifier     service.Notifier
	rules        entity.HouseRules
	now          func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	statsService service.BookingStatsService,
	folioService service.FolioService,
	notifier service.Notifier,
	rules entity.HouseRules,
	now func() time.Time,
) BookingUsecase {
	if now == nil {
		now = time.Now
	}
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		statsService: statsService,
		folioService: folioService,
		notifier:     notifier,
		rules:        rules,
		now:          now,
	}
}

func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingSubmittedResponse, error) {
	roomType := entity.RoomType(req.RoomType)
	if !roomType.IsValid() {
		return nil, ErrInvalidRoomType
	}

	checkIn, err := entity.ParseDate(req.CheckIn)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	checkOut, err := entity.ParseDate(req.CheckOut)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	now := u.now()
	if checkIn.Before(u.rules.Today(now)) {
		return nil, ErrCheckInInPast
	}
	if !checkOut.After(checkIn) {
		return nil, ErrCheckOutNotAfter
	}

	guests := req.Guests
	if guests == 0 {
		guests = defaultGuests
	}
	if guests < 1 || guests > maxGuests {
		return nil, ErrInvalidGuests
	}

	booking := &entity.Booking{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		RoomType:        roomType,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          guests,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusUnpaid,
		PaymentAmount:   decimal.Zero,
		PaidAmount:      decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.bookingRepo.Create(u.db.WithContext(ctx), booking); err != nil {
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, persistenceError(err)
	}

	u.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"room_type":  booking.RoomType,
		"check_in":   req.CheckIn,
		"check_out":  req.CheckOut,
	}).Info("Booking submitted")
	u.notifier.Notify(ctx, service.NewBookingEvent(service.EventBookingSubmitted, booking, "New booking request", now))

	return converter.BookingToSubmittedResponse(booking), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.BookingToResponse(booking, u.rules), nil
}

func (u *bookingUsecase) ListBookings(ctx context.Context, req *dto.BookingListRequest) (*dto.BookingListResponse, error) {
	filter := &entity.BookingFilter{
		Archived: req.Archived,
		Page:     req.Page,
		Limit:    req.Limit,
	}
	if req.Status != "" {
		status, err := entity.ParseBookingStatus(req.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		filter.Status = status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	bookings, total, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, persistenceError(err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings, u.rules),
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}, nil
}

func (u *bookingUsecase) DeleteBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return err
	}

	return u.db.WithContext(ctx).Session(stampedAt(u.now())).Transaction(func(tx *gorm.DB) error {
		rows, err := u.bookingRepo.Delete(tx, id)
		if err != nil {
			u.log.Warnf("Failed to delete booking %s: %+v", id, err)
			return persistenceError(err)
		}
		if rows == 0 {
			return ErrBookingNotFound
		}

		if err := u.auditService.LogBookingChange(ctx, tx, &actorID, entity.AuditActionBookingDelete, id, booking, nil); err != nil {
			u.log.Warnf("Failed to audit deletion of booking %s: %+v", id, err)
			return persistenceError(err)
		}
		return nil
	})
}

func (u *bookingUsecase) GetBookingStats(ctx context.Context) (*dto.BookingStatsResponse, error) {
	stats, err := u.statsService.BookingStats(ctx, u.now())
	if err != nil {
		return nil, persistenceError(err)
	}
	return converter.BookingStatsToResponse(stats), nil
}

func (u *bookingUsecase) GetPaymentStats(ctx context.Context) (*dto.PaymentStatsResponse, error) {
	stats, err := u.statsService.PaymentStats(ctx, u.now())
	if err != nil {
		return nil, persistenceError(err)
	}
	return converter.PaymentStatsToResponse(stats), nil
}

func (u *bookingUsecase) GetFolio(ctx context.Context, id uuid.UUID) (*dto.FolioDocument, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	content, filename, err := u.folioService.Render(booking, u.now())
	if err != nil {
		u.log.Warnf("Failed to render folio for booking %s: %+v", id, err)
		return nil, err
	}
	return &dto.FolioDocument{Filename: filename, Content: content}, nil
}

func (u *bookingUsecase) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, persistenceError(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
