package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	log "github.com/sirupsen/logrus"

	"starcasino/events"
	"starcasino/models"
	"starcasino/rewards"
)

// SellMultiplier is applied to an item's price when it is sold back;
// the sell price is floor(price * SellMultiplier).
const SellMultiplier = 1.2

type economyService struct {
	uowFactory    UnitOfWorkFactory
	caseTable     *rewards.Table
	rouletteTable *rewards.Table
	casePrice     int64
	roulettePrice int64

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEconomyService creates a new economy service over validated reward
// tables. The random source is injected so draws are reproducible in tests.
func NewEconomyService(uowFactory UnitOfWorkFactory, caseTable, rouletteTable *rewards.Table, casePrice, roulettePrice int64, rng *rand.Rand) EconomyService {
	return &economyService{
		uowFactory:    uowFactory,
		caseTable:     caseTable,
		rouletteTable: rouletteTable,
		casePrice:     casePrice,
		roulettePrice: roulettePrice,
		rng:           rng,
	}
}

func (s *economyService) DrawCase(ctx context.Context, telegramID int64) (*models.DrawResult, error) {
	return s.draw(ctx, telegramID, s.caseTable, s.casePrice, models.TransactionTypeCaseOpen)
}

func (s *economyService) DrawRoulette(ctx context.Context, telegramID int64) (*models.DrawResult, error) {
	return s.draw(ctx, telegramID, s.rouletteTable, s.roulettePrice, models.TransactionTypeRouletteSpin)
}

// draw debits the surface price, performs one weighted draw, adds the won
// item and records the ledger entry, all in one unit of work.
func (s *economyService) draw(ctx context.Context, telegramID int64, table *rewards.Table, price int64, txnType models.TransactionType) (*models.DrawResult, error) {
	var result *models.DrawResult

	err := withConflictRetry(ctx, func() error {
		uow := s.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer uow.Rollback() // No-op if already committed

		newBalance, err := uow.UserRepository().DeductBalance(ctx, telegramID, price)
		if err != nil {
			return err
		}

		won := s.drawReward(table)

		item := &models.InventoryItem{
			TelegramID: telegramID,
			ItemType:   won.Type,
			ItemName:   won.Name,
			ItemPrice:  won.Price,
			ItemEmoji:  won.Emoji,
			Status:     models.ItemStatusActive,
		}
		if err := uow.InventoryRepository().Add(ctx, item); err != nil {
			return fmt.Errorf("failed to add item to inventory: %w", err)
		}

		txn := &models.Transaction{
			TelegramID: telegramID,
			Type:       txnType,
			Amount:     -price,
			Details: map[string]any{
				"surface":      table.Surface(),
				"won_type":     won.Type,
				"won_name":     won.Name,
				"won_price":    won.Price,
				"inventory_id": item.ID,
			},
		}
		if err := RecordBalanceChange(ctx, uow, txn, newBalance); err != nil {
			return err
		}

		uow.EventBus().Publish(events.ItemWonEvent{
			TelegramID: telegramID,
			ItemID:     item.ID,
			ItemType:   item.ItemType,
			ItemName:   item.ItemName,
			ItemPrice:  item.ItemPrice,
			Surface:    table.Surface(),
		})

		if err := uow.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		result = &models.DrawResult{Item: item, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"telegramID": telegramID,
		"surface":    table.Surface(),
		"wonType":    result.Item.ItemType,
	}).Info("Draw completed")

	return result, nil
}

func (s *economyService) drawReward(table *rewards.Table) rewards.Reward {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return table.Draw(s.rng)
}

func (s *economyService) SellItem(ctx context.Context, telegramID, itemID int64) (*models.SellResult, error) {
	var result *models.SellResult

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

		// Only the owner may sell, and only while the item is active
		item, err := uow.InventoryRepository().TransitionOwned(ctx, itemID, telegramID, models.ItemStatusActive, models.ItemStatusSold)
		if err != nil {
			return err
		}

		sellPrice := int64(float64(item.ItemPrice) * SellMultiplier)

		newBalance, err := uow.UserRepository().AddBalance(ctx, telegramID, sellPrice)
		if err != nil {
			return fmt.Errorf("failed to credit sale: %w", err)
		}

		txn := &models.Transaction{
			TelegramID: telegramID,
			Type:       models.TransactionTypeItemSold,
			Amount:     sellPrice,
			Details: map[string]any{
				"inventory_id": item.ID,
				"item_type":    item.ItemType,
				"item_price":   item.ItemPrice,
				"sell_price":   sellPrice,
			},
		}
		if err := RecordBalanceChange(ctx, uow, txn, newBalance); err != nil {
			return err
		}

		if err := uow.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		result = &models.SellResult{SellPrice: sellPrice, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *economyService) GetInventory(ctx context.Context, telegramID int64) ([]*models.InventoryItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	items, err := uow.InventoryRepository().GetActiveByUser(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	return items, nil
}
