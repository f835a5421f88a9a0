package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starcasino/events"
	"starcasino/models"
)

func TestUserService_GetOrCreateUser_Existing(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, mockTxnRepo, _, _ := newTestMocks()

	svc := NewUserService(mockFactory, 0)

	existing := &models.User{TelegramID: 777, Username: "alice", Balance: 42}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(777)).Return(existing, nil)

	user, err := svc.GetOrCreateUser(ctx, 777, "alice")

	require.NoError(t, err)
	assert.Equal(t, existing, user)

	// An existing user triggers no writes
	mockUserRepo.AssertNotCalled(t, "Create")
	mockTxnRepo.AssertNotCalled(t, "Record")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestUserService_GetOrCreateUser_New(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, mockTxnRepo, _, _ := newTestMocks()

	svc := NewUserService(mockFactory, 0)

	created := &models.User{TelegramID: 777, Username: "alice", Balance: 0}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(777)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(777), "alice", int64(0)).Return(created, nil)

	user, err := svc.GetOrCreateUser(ctx, 777, "alice")

	require.NoError(t, err)
	assert.Equal(t, created, user)

	// A zero starting balance leaves no ledger entry
	mockTxnRepo.AssertNotCalled(t, "Record")

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	ev, ok := published[0].(events.UserCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(777), ev.TelegramID)
	assert.Equal(t, "alice", ev.Username)
}

func TestUserService_GetOrCreateUser_NewWithStartingBalance(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, mockTxnRepo, _, _ := newTestMocks()

	svc := NewUserService(mockFactory, 100)

	created := &models.User{TelegramID: 777, Username: "alice", Balance: 100}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(777)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(777), "alice", int64(100)).Return(created, nil)

	mockTxnRepo.On("Record", ctx, mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Type == models.TransactionTypeInitial && txn.Amount == 100
	})).Return(nil)

	user, err := svc.GetOrCreateUser(ctx, 777, "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Balance)
	mockTxnRepo.AssertExpectations(t)
}

func TestUserService_GetStats(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, _, _, _ := newTestMocks()

	svc := NewUserService(mockFactory, 0)

	stats := &models.CasinoStats{TotalUsers: 3, TotalStars: 300, AverageBalance: 100}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetStats", ctx).Return(stats, nil)

	got, err := svc.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, stats, got)
}
