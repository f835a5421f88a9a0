package service

import (
	"context"
	"fmt"

	"starcasino/events"
	"starcasino/models"
)

// RecordBalanceChange writes the ledger entry paired with a balance mutation
// and publishes the matching event on the unit of work's transactional bus.
// This is the single entry point for all balance changes: the mutation and
// its ledger row share one transaction, so both commit or both roll back.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, txn *models.Transaction, newBalance int64) error {
	if err := uow.TransactionRepository().Record(ctx, txn); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		TelegramID:      txn.TelegramID,
		OldBalance:      newBalance - txn.Amount,
		NewBalance:      newBalance,
		TransactionType: txn.Type,
		ChangeAmount:    txn.Amount,
	})

	return nil
}
