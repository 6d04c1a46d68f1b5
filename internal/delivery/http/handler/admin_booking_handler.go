package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/usecase"
	"hotel-ortus/pkg/response"
	"hotel-ortus/pkg/validator"

	"github.com/google/uuid"
)

const arrivalOverrideParam = "override"

// AdminBookingHandler is the back-office console over bookings.
type AdminBookingHandler struct {
	bookingUsecase   usecase.BookingUsecase
	lifecycleUsecase usecase.BookingLifecycleUsecase
	validator        *validator.CustomValidator
	now              func() time.Time
}

func NewAdminBookingHandler(
	bookingUsecase usecase.BookingUsecase,
	lifecycleUsecase usecase.BookingLifecycleUsecase,
	validator *validator.CustomValidator,
	now func() time.Time,
) *AdminBookingHandler {
	if now == nil {
		now = time.Now
	}
	return &AdminBookingHandler{
		bookingUsecase:   bookingUsecase,
		lifecycleUsecase: lifecycleUsecase,
		validator:        validator,
		now:              now,
	}
}

// ListBookings returns one page of bookings. ?archived=true switches to the archive.
func (h *AdminBookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	req := &dto.BookingListRequest{
		Status:   r.URL.Query().Get("status"),
		Archived: queryBool(r, "archived"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}

	result, err := h.bookingUsecase.ListBookings(r.Context(), req)
	if err != nil {
		writeBookingError(w, err, "Failed to get bookings")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Bookings retrieved successfully", result.Bookings,
		response.NewMeta(result.Page, result.Limit, result.Total))
}

func (h *AdminBookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), id)
	if err != nil {
		writeBookingError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *AdminBookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), actor, id); err != nil {
		writeBookingError(w, err, "Failed to delete booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *AdminBookingHandler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bookingUsecase.GetBookingStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get booking stats")
		return
	}
	response.Success(w, http.StatusOK, "Booking stats retrieved successfully", stats)
}

func (h *AdminBookingHandler) GetPaymentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bookingUsecase.GetPaymentStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get payment stats")
		return
	}
	response.Success(w, http.StatusOK, "Payment stats retrieved successfully", stats)
}

func (h *AdminBookingHandler) DownloadFolio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	folio, err := h.bookingUsecase.GetFolio(r.Context(), id)
	if err != nil {
		writeBookingError(w, err, "Failed to generate folio")
		return
	}

	response.File(w, "application/pdf", folio.Filename, folio.Content)
}

func (h *AdminBookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mutate(w, r, "Failed to update booking status", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		return h.lifecycleUsecase.SetStatus(r.Context(), actor, id, &req)
	})
}

func (h *AdminBookingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mutate(w, r, "Failed to update payment", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		return h.lifecycleUsecase.SetPayment(r.Context(), actor, id, &req)
	})
}

// CheckIn records the guest's arrival. Arriving before check-in opens is refused
// unless the desk passes ?override=true.
func (h *AdminBookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Failed to check in guest", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		if !queryBool(r, arrivalOverrideParam) {
			booking, err := h.bookingUsecase.GetBooking(r.Context(), id)
			if err != nil {
				return nil, err
			}
			if h.now().Before(booking.CheckInOpensAt) {
				return nil, &earlyArrivalError{opensAt: booking.CheckInOpensAt}
			}
		}
		return h.lifecycleUsecase.RecordArrival(r.Context(), actor, id)
	})
}

func (h *AdminBookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Failed to check out guest", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		return h.lifecycleUsecase.RecordDeparture(r.Context(), actor, id)
	})
}

func (h *AdminBookingHandler) ExtendStay(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Failed to extend stay", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		return h.lifecycleUsecase.Extend(r.Context(), actor, id)
	})
}

func (h *AdminBookingHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Failed to archive booking", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		return h.lifecycleUsecase.Archive(r.Context(), actor, id)
	})
}

func (h *AdminBookingHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Failed to restore booking", func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error) {
		return h.lifecycleUsecase.Unarchive(r.Context(), actor, id)
	})
}

func (h *AdminBookingHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

func (h *AdminBookingHandler) mutate(w http.ResponseWriter, r *http.Request, fallback string, run func(actor, id uuid.UUID) (*dto.BookingMutationResponse, error)) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	result, err := run(actor, id)
	if err != nil {
		if early, ok := err.(*earlyArrivalError); ok {
			response.Conflict(w, early.Error())
			return
		}
		writeBookingError(w, err, fallback)
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

type earlyArrivalError struct {
	opensAt time.Time
}

func (e *earlyArrivalError) Error() string {
	return fmt.Sprintf("Check-in opens at %s", e.opensAt.Format("15:04 on 2006-01-02"))
}
