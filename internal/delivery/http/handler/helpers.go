package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hotel-ortus/internal/delivery/http/middleware"
	"hotel-ortus/internal/usecase"
	"hotel-ortus/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func parseBookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return uuid.Nil, false
	}
	return id, true
}

func actorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

// writeBookingError maps the booking error taxonomy onto HTTP statuses.
func writeBookingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrInvalidArgument):
		response.BadRequest(w, invalidArgumentMessage(err))
	case errors.Is(err, usecase.ErrAlreadyCheckedIn),
		errors.Is(err, usecase.ErrAlreadyCheckedOut),
		errors.Is(err, usecase.ErrNotCheckedInYet),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrBookingCancelled),
		errors.Is(err, usecase.ErrExtensionLimitReached):
		response.Conflict(w, capitalize(err.Error()))
	default:
		response.InternalServerError(w, fallback)
	}
}

func invalidArgumentMessage(err error) string {
	return capitalize(strings.TrimPrefix(err.Error(), usecase.ErrInvalidArgument.Error()+": "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
