package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"starcasino/database"
	"starcasino/models"
)

// TransactionRepository implements the service.TransactionRepository interface
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record inserts a new ledger entry. The ledger is append-only; there are no
// update or delete operations on this table.
func (r *TransactionRepository) Record(ctx context.Context, txn *models.Transaction) error {
	detailsJSON, err := json.Marshal(txn.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction details: %w", err)
	}

	query := `
		INSERT INTO transactions (telegram_id, type, amount, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		txn.TelegramID,
		txn.Type,
		txn.Amount,
		detailsJSON,
	).Scan(&txn.ID, &txn.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", txn.TelegramID, mapConflict(err))
	}

	return nil
}

// GetByUser returns the most recent ledger entries for a user
func (r *TransactionRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, telegram_id, type, amount, details, created_at
		FROM transactions
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", telegramID, err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		var txn models.Transaction
		var detailsJSON []byte

		err := rows.Scan(
			&txn.ID,
			&txn.TelegramID,
			&txn.Type,
			&txn.Amount,
			&detailsJSON,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &txn.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction details: %w", err)
			}
		}

		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}
