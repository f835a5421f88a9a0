package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"starcasino/models"
)

type adminService struct {
	uowFactory UnitOfWorkFactory
	authorizer Authorizer
}

// NewAdminService creates a new service for privileged balance operations
func NewAdminService(uowFactory UnitOfWorkFactory, authorizer Authorizer) AdminService {
	return &adminService{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Deposit credits a manual top-up. Purchases happen out of band; an admin
// applies the stars once payment is confirmed.
func (s *adminService) Deposit(ctx context.Context, telegramID int64, amount int64, adminID int64) (int64, error) {
	if !s.authorizer.IsAdmin(adminID) {
		return 0, ErrUnauthorized
	}
	if amount <= 0 {
		return 0, fmt.Errorf("deposit amount must be positive")
	}

	newBalance, err := s.applyChange(ctx, telegramID, amount, models.TransactionTypeDeposit, map[string]any{
		"admin_id": adminID,
		"method":   "manual",
	})
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"telegramID": telegramID,
		"amount":     amount,
		"adminID":    adminID,
	}).Info("Deposit applied")

	return newBalance, nil
}

// AdjustBalance applies a signed correction to a user's balance
func (s *adminService) AdjustBalance(ctx context.Context, telegramID int64, amount int64, adminID int64) (int64, error) {
	if !s.authorizer.IsAdmin(adminID) {
		return 0, ErrUnauthorized
	}
	if amount == 0 {
		return 0, fmt.Errorf("adjustment amount must be non-zero")
	}

	newBalance, err := s.applyChange(ctx, telegramID, amount, models.TransactionTypeAdminAdjustment, map[string]any{
		"admin_id": adminID,
	})
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"telegramID": telegramID,
		"amount":     amount,
		"adminID":    adminID,
	}).Info("Balance adjusted")

	return newBalance, nil
}

func (s *adminService) applyChange(ctx context.Context, telegramID, amount int64, txnType models.TransactionType, details map[string]any) (int64, error) {
	var newBalance int64

	err := withConflictRetry(ctx, func() error {
		uow := s.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer uow.Rollback() // No-op if already committed

		var err error
		if amount > 0 {
			newBalance, err = uow.UserRepository().AddBalance(ctx, telegramID, amount)
		} else {
			newBalance, err = uow.UserRepository().DeductBalance(ctx, telegramID, -amount)
		}
		if err != nil {
			return err
		}

		txn := &models.Transaction{
			TelegramID: telegramID,
			Type:       txnType,
			Amount:     amount,
			Details:    details,
		}
		if err := RecordBalanceChange(ctx, uow, txn, newBalance); err != nil {
			return err
		}

		if err := uow.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
