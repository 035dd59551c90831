package service

import "errors"

var (
	// Validation errors, surfaced to the caller for correction.
	ErrInvalidDateRange = errors.New("checkout must be later than checkin")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidWeight    = errors.New("per-unit services require a non-negative weight")
	ErrUnknownOption    = errors.New("chosen package does not match any current option")

	// ErrInvalidPromotionConfig rejects promotions that do not carry
	// exactly one discount mechanism. Checked at save time so evaluation
	// can assume the invariant.
	ErrInvalidPromotionConfig = errors.New("promotion must define exactly one discount mechanism")

	// ErrRoomConflict means the caller lost the race for a room interval
	// and should re-run the availability search rather than retry blindly.
	ErrRoomConflict = errors.New("room is already booked for the requested dates")

	ErrRoomUnderMaintenance = errors.New("room is under maintenance")
	ErrInvalidTransition    = errors.New("booking status transition not allowed")

	// ErrOrderFrozen guards orders that have left pending: their
	// composition and breakdown may no longer change.
	ErrOrderFrozen = errors.New("order is no longer editable")

	// ErrAlreadyFinalized is success-equivalent: handlers respond with the
	// previously persisted breakdown so finalize stays idempotent.
	ErrAlreadyFinalized = errors.New("order has already been finalized")

	ErrRoomNotFound      = errors.New("room not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPromotionNotFound = errors.New("promotion not found")
)
