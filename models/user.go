package models

import (
	"time"
)

// User represents a Telegram user with a star balance
type User struct {
	TelegramID     int64      `db:"telegram_id"`
	Username       string     `db:"username"`
	Balance        int64      `db:"balance"`
	LastBonusClaim *time.Time `db:"last_bonus_claim"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
