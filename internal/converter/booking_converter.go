package converter

import (
	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO, including the
// values derived from the hotel's house rules.
func BookingToResponse(booking *entity.Booking, rules entity.HouseRules) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:               booking.ID,
		Name:             booking.Name,
		Email:            booking.Email,
		Phone:            booking.Phone,
		RoomType:         string(booking.RoomType),
		CheckIn:          booking.CheckIn.Format(entity.DateLayout),
		CheckOut:         booking.CheckOut.Format(entity.DateLayout),
		Guests:           booking.Guests,
		SpecialRequests:  booking.SpecialRequests,
		Status:           string(booking.Status),
		AdminNotes:       booking.AdminNotes,
		PaymentStatus:    string(booking.PaymentStatus),
		PaymentAmount:    booking.PaymentAmount,
		PaidAmount:       booking.PaidAmount,
		PaidAt:           booking.PaidAt,
		ActualCheckIn:    booking.ActualCheckIn,
		ActualCheckOut:   booking.ActualCheckOut,
		IsArchived:       booking.IsArchived,
		ExtendedBy:       booking.ExtendedBy,
		Nights:           booking.Nights(),
		NightlyRate:      booking.RoomType.NightlyRate(),
		SuggestedAmount:  booking.SuggestedAmount(),
		CheckInOpensAt:   rules.CheckInOpensAt(booking),
		CheckOutDeadline: rules.CheckOutDeadline(booking),
		Underpaid:        booking.IsUnderpaid(),
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}

	if booking.OriginalCheckOut != nil {
		original := booking.OriginalCheckOut.Format(entity.DateLayout)
		response.OriginalCheckOut = &original
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking, rules entity.HouseRules) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i], rules)
	}
	return responses
}

func BookingToSubmittedResponse(booking *entity.Booking) *dto.BookingSubmittedResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingSubmittedResponse{
		ID:              booking.ID,
		Name:            booking.Name,
		RoomType:        string(booking.RoomType),
		CheckIn:         booking.CheckIn.Format(entity.DateLayout),
		CheckOut:        booking.CheckOut.Format(entity.DateLayout),
		Guests:          booking.Guests,
		Nights:          booking.Nights(),
		SuggestedAmount: booking.SuggestedAmount(),
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
	}
}

func RoomRatesToResponses() []dto.RoomRateResponse {
	types := entity.RoomTypes()
	responses := make([]dto.RoomRateResponse, len(types))
	for i, t := range types {
		responses[i] = dto.RoomRateResponse{
			RoomType:    string(t),
			NightlyRate: t.NightlyRate(),
		}
	}
	return responses
}
