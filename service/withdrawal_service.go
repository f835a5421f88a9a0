package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"starcasino/events"
	"starcasino/models"
)

type withdrawalService struct {
	uowFactory UnitOfWorkFactory
	authorizer Authorizer
}

// NewWithdrawalService creates a new withdrawal workflow service
func NewWithdrawalService(uowFactory UnitOfWorkFactory, authorizer Authorizer) WithdrawalService {
	return &withdrawalService{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, telegramID, itemID int64) (*models.WithdrawalRequest, error) {
	var request *models.WithdrawalRequest

	err := withConflictRetry(ctx, func() error {
		uow := s.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer uow.Rollback() // No-op if already committed

		user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}

		// Reserving the item closes the race window: a concurrent second
		// request or a sale both require the item to still be active.
		if _, err := uow.InventoryRepository().TransitionOwned(ctx, itemID, telegramID, models.ItemStatusActive, models.ItemStatusReserved); err != nil {
			return err
		}

		request = &models.WithdrawalRequest{
			TelegramID:      telegramID,
			InventoryItemID: itemID,
			Status:          models.WithdrawalStatusPending,
		}
		if err := uow.WithdrawalRepository().Create(ctx, request); err != nil {
			return err
		}

		uow.EventBus().Publish(events.WithdrawalRequestedEvent{
			TelegramID: telegramID,
			RequestID:  request.ID,
			ItemID:     itemID,
		})

		if err := uow.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"telegramID": telegramID,
		"requestID":  request.ID,
		"itemID":     itemID,
	}).Info("Withdrawal requested")

	return request, nil
}

func (s *withdrawalService) ConfirmWithdrawal(ctx context.Context, requestID, adminID int64) error {
	return s.resolve(ctx, requestID, adminID, models.WithdrawalStatusCompleted)
}

func (s *withdrawalService) RejectWithdrawal(ctx context.Context, requestID, adminID int64) error {
	return s.resolve(ctx, requestID, adminID, models.WithdrawalStatusRejected)
}

// resolve applies an admin decision: the request leaves pending and its item
// leaves reserved together, or not at all.
func (s *withdrawalService) resolve(ctx context.Context, requestID, adminID int64, decision models.WithdrawalStatus) error {
	if !s.authorizer.IsAdmin(adminID) {
		return ErrUnauthorized
	}

	err := withConflictRetry(ctx, func() error {
		uow := s.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer uow.Rollback() // No-op if already committed

		request, err := uow.WithdrawalRepository().GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get withdrawal request: %w", err)
		}
		if request == nil {
			return ErrItemNotAvailable
		}

		if err := uow.WithdrawalRepository().UpdateStatus(ctx, requestID, models.WithdrawalStatusPending, decision); err != nil {
			return err
		}

		itemTarget := models.ItemStatusWithdrawn
		if decision == models.WithdrawalStatusRejected {
			// A rejected request hands the item back to its owner
			itemTarget = models.ItemStatusActive
		}
		item, err := uow.InventoryRepository().Transition(ctx, request.InventoryItemID, models.ItemStatusReserved, itemTarget)
		if err != nil {
			return err
		}

		if decision == models.WithdrawalStatusCompleted {
			// Disposal does not move the balance; the zero-amount entry
			// keeps the item's exit auditable in the same ledger.
			txn := &models.Transaction{
				TelegramID: request.TelegramID,
				Type:       models.TransactionTypeWithdrawal,
				Amount:     0,
				Details: map[string]any{
					"request_id":   requestID,
					"inventory_id": item.ID,
					"item_type":    item.ItemType,
					"item_price":   item.ItemPrice,
					"admin_id":     adminID,
				},
			}
			if err := uow.TransactionRepository().Record(ctx, txn); err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}
		}

		uow.EventBus().Publish(events.WithdrawalResolvedEvent{
			TelegramID: request.TelegramID,
			RequestID:  requestID,
			ItemID:     request.InventoryItemID,
			Status:     decision,
			AdminID:    adminID,
		})

		if err := uow.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"requestID": requestID,
		"adminID":   adminID,
		"decision":  decision,
	}).Info("Withdrawal resolved")

	return nil
}

func (s *withdrawalService) ListPendingWithdrawals(ctx context.Context) ([]*models.PendingWithdrawal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pending, err := uow.WithdrawalRepository().ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}

	return pending, nil
}
