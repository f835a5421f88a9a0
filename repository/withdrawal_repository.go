package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"starcasino/database"
	"starcasino/models"
	"starcasino/service"
)

// WithdrawalRepository implements the service.WithdrawalRepository interface
type WithdrawalRepository struct {
	q queryable
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

// newWithdrawalRepositoryWithTx creates a new withdrawal repository with a transaction
func newWithdrawalRepositoryWithTx(tx queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: tx}
}

// Create inserts a new pending request. The partial unique index on pending
// requests per item backs up the reservation made on the item itself.
func (r *WithdrawalRepository) Create(ctx context.Context, request *models.WithdrawalRequest) error {
	query := `
		INSERT INTO withdrawal_requests (telegram_id, inventory_item_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		request.TelegramID,
		request.InventoryItemID,
		models.WithdrawalStatusPending,
	).Scan(&request.ID, &request.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %d already has an open request", service.ErrItemNotAvailable, request.InventoryItemID)
		}
		return fmt.Errorf("failed to create withdrawal request for item %d: %w", request.InventoryItemID, mapConflict(err))
	}

	request.Status = models.WithdrawalStatusPending
	return nil
}

// GetByID retrieves a request by its ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, requestID int64) (*models.WithdrawalRequest, error) {
	query := `
		SELECT id, telegram_id, inventory_item_id, status, created_at
		FROM withdrawal_requests
		WHERE id = $1
	`

	var request models.WithdrawalRequest
	err := r.q.QueryRow(ctx, query, requestID).Scan(
		&request.ID,
		&request.TelegramID,
		&request.InventoryItemID,
		&request.Status,
		&request.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal request %d: %w", requestID, err)
	}

	return &request, nil
}

// UpdateStatus moves a request between statuses in one conditional update
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, requestID int64, from, to models.WithdrawalStatus) error {
	query := `
		UPDATE withdrawal_requests
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.q.Exec(ctx, query, to, requestID, from)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal request %d: %w", requestID, mapConflict(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %d is not %s", service.ErrItemNotAvailable, requestID, from)
	}

	return nil
}

// ListPending returns all pending requests with their items, oldest first.
// The admin queue is strictly FIFO.
func (r *WithdrawalRepository) ListPending(ctx context.Context) ([]*models.PendingWithdrawal, error) {
	query := `
		SELECT
			wr.id, wr.telegram_id, wr.inventory_item_id, wr.status, wr.created_at,
			i.id, i.telegram_id, i.item_type, i.item_name, i.item_price, i.item_emoji, i.status, i.created_at,
			u.username
		FROM withdrawal_requests wr
		JOIN inventory_items i ON i.id = wr.inventory_item_id
		JOIN users u ON u.telegram_id = wr.telegram_id
		WHERE wr.status = $1
		ORDER BY wr.created_at ASC
	`

	rows, err := r.q.Query(ctx, query, models.WithdrawalStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}
	defer rows.Close()

	var pending []*models.PendingWithdrawal
	for rows.Next() {
		var p models.PendingWithdrawal
		err := rows.Scan(
			&p.Request.ID,
			&p.Request.TelegramID,
			&p.Request.InventoryItemID,
			&p.Request.Status,
			&p.Request.CreatedAt,
			&p.Item.ID,
			&p.Item.TelegramID,
			&p.Item.ItemType,
			&p.Item.ItemName,
			&p.Item.ItemPrice,
			&p.Item.ItemEmoji,
			&p.Item.Status,
			&p.Item.CreatedAt,
			&p.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending withdrawal: %w", err)
		}
		pending = append(pending, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending withdrawals: %w", err)
	}

	return pending, nil
}
