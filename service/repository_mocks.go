package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"starcasino/events"
	"starcasino/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, telegramID int64, username string, initialBalance int64) (*models.User, error) {
	args := m.Called(ctx, telegramID, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	args := m.Called(ctx, telegramID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeductBalance(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	args := m.Called(ctx, telegramID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CreditBonus(ctx context.Context, telegramID int64, amount int64, claimedAt, since time.Time) (int64, error) {
	args := m.Called(ctx, telegramID, amount, claimedAt, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetStats(ctx context.Context) (*models.CasinoStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CasinoStats), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, txn *models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, telegramID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Add(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, itemID int64) (*models.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetActiveByUser(ctx context.Context, telegramID int64) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Transition(ctx context.Context, itemID int64, from, to models.ItemStatus) (*models.InventoryItem, error) {
	args := m.Called(ctx, itemID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) TransitionOwned(ctx context.Context, itemID, telegramID int64, from, to models.ItemStatus) (*models.InventoryItem, error) {
	args := m.Called(ctx, itemID, telegramID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, request *models.WithdrawalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, requestID int64) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) UpdateStatus(ctx context.Context, requestID int64, from, to models.WithdrawalStatus) error {
	args := m.Called(ctx, requestID, from, to)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) ListPending(ctx context.Context) ([]*models.PendingWithdrawal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PendingWithdrawal), args.Error(1)
}

// recordingEventBus collects published events for assertions
type recordingEventBus struct {
	published []events.Event
}

func (b *recordingEventBus) Publish(e events.Event) {
	b.published = append(b.published, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork backed by the
// repository mocks it was configured with
type MockUnitOfWork struct {
	mock.Mock
	userRepo        *MockUserRepository
	transactionRepo *MockTransactionRepository
	inventoryRepo   *MockInventoryRepository
	withdrawalRepo  *MockWithdrawalRepository
	eventBus        *recordingEventBus
}

// SetRepositories configures the repositories this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(
	userRepo *MockUserRepository,
	transactionRepo *MockTransactionRepository,
	inventoryRepo *MockInventoryRepository,
	withdrawalRepo *MockWithdrawalRepository,
) {
	m.userRepo = userRepo
	m.transactionRepo = transactionRepo
	m.inventoryRepo = inventoryRepo
	m.withdrawalRepo = withdrawalRepo
	m.eventBus = &recordingEventBus{}
}

// PublishedEvents returns the events published during the unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.eventBus.published
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) InventoryRepository() InventoryRepository {
	return m.inventoryRepo
}

func (m *MockUnitOfWork) WithdrawalRepository() WithdrawalRepository {
	return m.withdrawalRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
