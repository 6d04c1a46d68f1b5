package handler

import (
	"encoding/json"
	"net/http"

	"hotel-ortus/internal/converter"
	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/usecase"
	"hotel-ortus/pkg/response"
	"hotel-ortus/pkg/validator"
)

// BookingHandler serves the public website: the booking form and the rate card.
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateBooking handles a guest's booking request
// @Summary Submit a booking request
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		writeBookingError(w, err, "Failed to create booking")
		return
	}

	response.Success(w, http.StatusCreated, "Booking request received. We will confirm shortly.", booking)
}

func (h *BookingHandler) GetRoomRates(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Room rates retrieved successfully", converter.RoomRatesToResponses())
}
