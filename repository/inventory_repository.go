package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"starcasino/database"
	"starcasino/models"
	"starcasino/service"
)

// allowedItemTransitions is the item lifecycle table. Sold and withdrawn are
// terminal; reserved only leaves via an admin decision.
var allowedItemTransitions = map[models.ItemStatus][]models.ItemStatus{
	models.ItemStatusActive:   {models.ItemStatusReserved, models.ItemStatusSold},
	models.ItemStatusReserved: {models.ItemStatusWithdrawn, models.ItemStatusActive},
}

func transitionAllowed(from, to models.ItemStatus) bool {
	for _, allowed := range allowedItemTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InventoryRepository implements the service.InventoryRepository interface
type InventoryRepository struct {
	q queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// newInventoryRepositoryWithTx creates a new inventory repository with a transaction
func newInventoryRepositoryWithTx(tx queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

// Add inserts a new active item
func (r *InventoryRepository) Add(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (telegram_id, item_type, item_name, item_price, item_emoji, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		item.TelegramID,
		item.ItemType,
		item.ItemName,
		item.ItemPrice,
		item.ItemEmoji,
		models.ItemStatusActive,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to add inventory item for user %d: %w", item.TelegramID, mapConflict(err))
	}

	item.Status = models.ItemStatusActive
	return nil
}

// GetByID retrieves an item by its ID
func (r *InventoryRepository) GetByID(ctx context.Context, itemID int64) (*models.InventoryItem, error) {
	query := `
		SELECT id, telegram_id, item_type, item_name, item_price, item_emoji, status, created_at
		FROM inventory_items
		WHERE id = $1
	`

	var item models.InventoryItem
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&item.ID,
		&item.TelegramID,
		&item.ItemType,
		&item.ItemName,
		&item.ItemPrice,
		&item.ItemEmoji,
		&item.Status,
		&item.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d: %w", itemID, err)
	}

	return &item, nil
}

// GetActiveByUser returns a user's active items, most recent first
func (r *InventoryRepository) GetActiveByUser(ctx context.Context, telegramID int64) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, telegram_id, item_type, item_name, item_price, item_emoji, status, created_at
		FROM inventory_items
		WHERE telegram_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, telegramID, models.ItemStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get active items for user %d: %w", telegramID, err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		err := rows.Scan(
			&item.ID,
			&item.TelegramID,
			&item.ItemType,
			&item.ItemName,
			&item.ItemPrice,
			&item.ItemEmoji,
			&item.Status,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory items: %w", err)
	}

	return items, nil
}

// Transition moves an item between statuses in one conditional update
func (r *InventoryRepository) Transition(ctx context.Context, itemID int64, from, to models.ItemStatus) (*models.InventoryItem, error) {
	return r.transition(ctx, itemID, nil, from, to)
}

// TransitionOwned is Transition with an additional ownership guard
func (r *InventoryRepository) TransitionOwned(ctx context.Context, itemID, telegramID int64, from, to models.ItemStatus) (*models.InventoryItem, error) {
	return r.transition(ctx, itemID, &telegramID, from, to)
}

func (r *InventoryRepository) transition(ctx context.Context, itemID int64, telegramID *int64, from, to models.ItemStatus) (*models.InventoryItem, error) {
	if !transitionAllowed(from, to) {
		return nil, fmt.Errorf("%w: transition %s -> %s is not allowed", service.ErrItemNotAvailable, from, to)
	}

	query := `
		UPDATE inventory_items
		SET status = $1
		WHERE id = $2 AND status = $3 AND ($4::bigint IS NULL OR telegram_id = $4)
		RETURNING id, telegram_id, item_type, item_name, item_price, item_emoji, status, created_at
	`

	var item models.InventoryItem
	err := r.q.QueryRow(ctx, query, to, itemID, from, telegramID).Scan(
		&item.ID,
		&item.TelegramID,
		&item.ItemType,
		&item.ItemName,
		&item.ItemPrice,
		&item.ItemEmoji,
		&item.Status,
		&item.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		// Missing item, wrong owner or already transitioned: all the same
		// outcome for the caller, with no mutation performed.
		return nil, fmt.Errorf("%w: item %d is not %s", service.ErrItemNotAvailable, itemID, from)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition item %d to %s: %w", itemID, to, mapConflict(err))
	}

	return &item, nil
}
