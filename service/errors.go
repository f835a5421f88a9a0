package service

import (
	"errors"
	"fmt"
)

// Business failures are expected outcomes. They are returned to the caller
// immediately and never retried; callers match them with errors.Is/errors.As
// instead of string comparison.
var (
	// ErrInsufficientFunds indicates the user's balance cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUserNotFound indicates the user has never been provisioned
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotAvailable indicates an inventory item or withdrawal request
	// is not in the state the operation requires
	ErrItemNotAvailable = errors.New("item not available")

	// ErrUnauthorized indicates the acting identity lacks the admin capability
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorageConflict indicates a concurrent-update race was lost after
	// exhausting retries
	ErrStorageConflict = errors.New("storage conflict")
)

// CooldownActiveError indicates the daily bonus was claimed within the last
// 24 hours. HoursRemaining is the whole-hour count until the next claim.
type CooldownActiveError struct {
	HoursRemaining int64
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("bonus cooldown active: %d hours remaining", e.HoursRemaining)
}
