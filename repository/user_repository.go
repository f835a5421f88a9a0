package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"starcasino/database"
	"starcasino/models"
	"starcasino/service"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByTelegramID retrieves a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `
		SELECT telegram_id, username, balance, last_bonus_claim, created_at, updated_at
		FROM users
		WHERE telegram_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, telegramID).Scan(
		&user.TelegramID,
		&user.Username,
		&user.Balance,
		&user.LastBonusClaim,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by telegram ID %d: %w", telegramID, mapConflict(err))
	}

	return &user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, telegramID int64, username string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (telegram_id, username, balance)
		VALUES ($1, $2, $3)
		RETURNING telegram_id, username, balance, last_bonus_claim, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, telegramID, username, initialBalance).Scan(
		&user.TelegramID,
		&user.Username,
		&user.Balance,
		&user.LastBonusClaim,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user with telegram ID %d: %w", telegramID, mapConflict(err))
	}

	return &user, nil
}

// AddBalance credits a user's balance atomically and returns the new balance
func (r *UserRepository) AddBalance(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE telegram_id = $2
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, telegramID).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, service.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for user %d: %w", telegramID, mapConflict(err))
	}

	return newBalance, nil
}

// DeductBalance debits a user's balance atomically. The sufficiency check is
// part of the update itself, so two concurrent debits can never both succeed
// when only one could be honored.
func (r *UserRepository) DeductBalance(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE telegram_id = $2 AND balance >= $1
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, telegramID).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Distinguish a missing user from insufficient funds
		user, getErr := r.GetByTelegramID(ctx, telegramID)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check user: %w", getErr)
		}
		if user == nil {
			return 0, service.ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: have %d, need %d", service.ErrInsufficientFunds, user.Balance, amount)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance for user %d: %w", telegramID, mapConflict(err))
	}

	return newBalance, nil
}

// CreditBonus credits the bonus amount and stamps the claim time in one
// conditional update guarded by the cooldown threshold
func (r *UserRepository) CreditBonus(ctx context.Context, telegramID int64, amount int64, claimedAt, since time.Time) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, last_bonus_claim = $2, updated_at = NOW()
		WHERE telegram_id = $3
		  AND (last_bonus_claim IS NULL OR last_bonus_claim <= $4)
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, claimedAt, telegramID, since).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Guarded out: either the user is missing or a concurrent claim won
		user, getErr := r.GetByTelegramID(ctx, telegramID)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check user: %w", getErr)
		}
		if user == nil {
			return 0, service.ErrUserNotFound
		}
		hours := int64(1)
		if user.LastBonusClaim != nil {
			hours = service.HoursUntilNextBonus(*user.LastBonusClaim, claimedAt)
		}
		return 0, &service.CooldownActiveError{HoursRemaining: hours}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to credit bonus for user %d: %w", telegramID, mapConflict(err))
	}

	return newBalance, nil
}

// GetStats returns aggregate user and balance figures
func (r *UserRepository) GetStats(ctx context.Context) (*models.CasinoStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(balance), 0)
		FROM users
	`

	var stats models.CasinoStats
	if err := r.q.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.TotalStars); err != nil {
		return nil, fmt.Errorf("failed to get casino stats: %w", err)
	}

	if stats.TotalUsers > 0 {
		stats.AverageBalance = stats.TotalStars / stats.TotalUsers
	}

	return &stats, nil
}
