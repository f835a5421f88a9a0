package testutil

import (
	"time"

	"starcasino/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(telegramID int64, username string) *models.User {
	now := time.Now()
	return &models.User{
		TelegramID: telegramID,
		Username:   username,
		Balance:    100,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestUserWithBalance creates a test user with a specific balance
func CreateTestUserWithBalance(telegramID int64, username string, balance int64) *models.User {
	user := CreateTestUser(telegramID, username)
	user.Balance = balance
	return user
}

// CreateTestItem creates an active test inventory item
func CreateTestItem(telegramID int64) *models.InventoryItem {
	return &models.InventoryItem{
		TelegramID: telegramID,
		ItemType:   "bear",
		ItemName:   "Bear",
		ItemPrice:  15,
		ItemEmoji:  "🧸",
		Status:     models.ItemStatusActive,
		CreatedAt:  time.Now(),
	}
}

// CreateTestItemWithPrice creates an active test item with a specific price
func CreateTestItemWithPrice(telegramID, price int64) *models.InventoryItem {
	item := CreateTestItem(telegramID)
	item.ItemPrice = price
	return item
}

// CreateTestTransaction creates a test ledger entry
func CreateTestTransaction(telegramID int64, txnType models.TransactionType, amount int64) *models.Transaction {
	return &models.Transaction{
		TelegramID: telegramID,
		Type:       txnType,
		Amount:     amount,
		Details: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}
