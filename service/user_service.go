package service

import (
	"context"
	"fmt"

	"starcasino/events"
	"starcasino/models"
)

type userService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
}

// NewUserService creates a new user service. startingBalance is credited on
// first contact; the default deployment starts users at zero.
func NewUserService(uowFactory UnitOfWorkFactory, startingBalance int64) UserService {
	return &userService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// GetOrCreateUser retrieves an existing user or provisions a new one. This
// is the only path that creates users; every other operation fails with
// ErrUserNotFound for an unknown Telegram ID.
func (s *userService) GetOrCreateUser(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, telegramID, username, s.startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.startingBalance > 0 {
		txn := &models.Transaction{
			TelegramID: telegramID,
			Type:       models.TransactionTypeInitial,
			Amount:     s.startingBalance,
			Details: map[string]any{
				"username": username,
			},
		}
		if err := RecordBalanceChange(ctx, uow, txn, user.Balance); err != nil {
			return nil, err
		}
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		TelegramID:     telegramID,
		Username:       username,
		InitialBalance: user.Balance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetStats returns total users, total stars in circulation and the average
// balance for the admin dashboard
func (s *userService) GetStats(ctx context.Context) (*models.CasinoStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stats, err := uow.UserRepository().GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
