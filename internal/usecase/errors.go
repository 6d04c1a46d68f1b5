package usecase

import (
	"errors"
	"fmt"
	"strings"

	"hotel-ortus/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInvalidArgument is the root of every input rejection; match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrInvalidStatus        = fmt.Errorf("%w: status must be one of pending, confirmed, cancelled, completed", ErrInvalidArgument)
	ErrInvalidPaymentStatus = fmt.Errorf("%w: payment status must be one of unpaid, partial, paid, refunded", ErrInvalidArgument)
	ErrInvalidRoomType      = fmt.Errorf("%w: unknown room type", ErrInvalidArgument)
	ErrInvalidDateFormat    = fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidArgument)
	ErrCheckInInPast        = fmt.Errorf("%w: check-in date cannot be in the past", ErrInvalidArgument)
	ErrCheckOutNotAfter     = fmt.Errorf("%w: check-out date must be after check-in date", ErrInvalidArgument)
	ErrNegativeAmount       = fmt.Errorf("%w: amounts cannot be negative", ErrInvalidArgument)
	ErrInvalidGuests        = fmt.Errorf("%w: guests must be between 1 and 6", ErrInvalidArgument)
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPersistenceFailure = errors.New("persistence failure")

	// Presence errors come from the entity; re-exported so handlers need one import.
	ErrAlreadyCheckedIn  = entity.ErrAlreadyCheckedIn
	ErrAlreadyCheckedOut = entity.ErrAlreadyCheckedOut
	ErrNotCheckedInYet   = entity.ErrNotCheckedInYet

	// Only returned when strict transitions or an extension limit are configured.
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrBookingCancelled      = errors.New("booking is cancelled")
	ErrExtensionLimitReached = errors.New("maximum number of extensions reached")
)

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
