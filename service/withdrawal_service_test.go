package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starcasino/models"
)

func newTestWithdrawalService(factory UnitOfWorkFactory) WithdrawalService {
	return NewWithdrawalService(factory, NewStaticAuthorizer([]int64{1000}))
}

func TestWithdrawalService_RequestWithdrawal_Success(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, _, mockInventoryRepo, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	user := &models.User{TelegramID: 777, Balance: 10}
	reservedItem := &models.InventoryItem{ID: 5, TelegramID: 777, ItemType: "ring", Status: models.ItemStatusReserved}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(777)).Return(user, nil)
	mockInventoryRepo.On("TransitionOwned", ctx, int64(5), int64(777), models.ItemStatusActive, models.ItemStatusReserved).
		Return(reservedItem, nil)

	mockWithdrawalRepo.On("Create", ctx, mock.MatchedBy(func(r *models.WithdrawalRequest) bool {
		return r.TelegramID == 777 && r.InventoryItemID == 5 && r.Status == models.WithdrawalStatusPending
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.WithdrawalRequest).ID = 42
	})

	request, err := svc.RequestWithdrawal(ctx, 777, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(42), request.ID)
	assert.Equal(t, models.WithdrawalStatusPending, request.Status)

	mockInventoryRepo.AssertExpectations(t)
	mockWithdrawalRepo.AssertExpectations(t)
}

func TestWithdrawalService_RequestWithdrawal_ItemNotActive(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, _, mockInventoryRepo, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	user := &models.User{TelegramID: 777, Balance: 10}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(777)).Return(user, nil)
	// A second request for the same item finds it already reserved
	mockInventoryRepo.On("TransitionOwned", ctx, int64(5), int64(777), models.ItemStatusActive, models.ItemStatusReserved).
		Return(nil, ErrItemNotAvailable)

	request, err := svc.RequestWithdrawal(ctx, 777, 5)

	assert.Nil(t, request)
	assert.ErrorIs(t, err, ErrItemNotAvailable)

	mockWithdrawalRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestWithdrawalService_RequestWithdrawal_UserNotFound(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo, _, mockInventoryRepo, _ := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByTelegramID", ctx, int64(404)).Return(nil, nil)

	request, err := svc.RequestWithdrawal(ctx, 404, 5)

	assert.Nil(t, request)
	assert.ErrorIs(t, err, ErrUserNotFound)
	mockInventoryRepo.AssertNotCalled(t, "TransitionOwned")
}

func TestWithdrawalService_ConfirmWithdrawal_Success(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockTxnRepo, mockInventoryRepo, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	request := &models.WithdrawalRequest{
		ID:              42,
		TelegramID:      777,
		InventoryItemID: 5,
		Status:          models.WithdrawalStatusPending,
	}
	withdrawnItem := &models.InventoryItem{ID: 5, TelegramID: 777, ItemType: "ring", ItemPrice: 100, Status: models.ItemStatusWithdrawn}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWithdrawalRepo.On("GetByID", ctx, int64(42)).Return(request, nil)
	mockWithdrawalRepo.On("UpdateStatus", ctx, int64(42), models.WithdrawalStatusPending, models.WithdrawalStatusCompleted).
		Return(nil)
	mockInventoryRepo.On("Transition", ctx, int64(5), models.ItemStatusReserved, models.ItemStatusWithdrawn).
		Return(withdrawnItem, nil)

	// The item leaves the economy at zero cost to the balance
	mockTxnRepo.On("Record", ctx, mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.TelegramID == 777 &&
			txn.Type == models.TransactionTypeWithdrawal &&
			txn.Amount == 0 &&
			txn.Details["admin_id"] == int64(1000)
	})).Return(nil)

	err := svc.ConfirmWithdrawal(ctx, 42, 1000)

	require.NoError(t, err)
	mockWithdrawalRepo.AssertExpectations(t)
	mockInventoryRepo.AssertExpectations(t)
	mockTxnRepo.AssertExpectations(t)
}

func TestWithdrawalService_ConfirmWithdrawal_AlreadyResolved(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockTxnRepo, mockInventoryRepo, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	request := &models.WithdrawalRequest{
		ID:              42,
		TelegramID:      777,
		InventoryItemID: 5,
		Status:          models.WithdrawalStatusCompleted,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWithdrawalRepo.On("GetByID", ctx, int64(42)).Return(request, nil)
	// The conditional update only matches pending requests
	mockWithdrawalRepo.On("UpdateStatus", ctx, int64(42), models.WithdrawalStatusPending, models.WithdrawalStatusCompleted).
		Return(ErrItemNotAvailable)

	err := svc.ConfirmWithdrawal(ctx, 42, 1000)

	assert.ErrorIs(t, err, ErrItemNotAvailable)
	mockInventoryRepo.AssertNotCalled(t, "Transition")
	mockTxnRepo.AssertNotCalled(t, "Record")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestWithdrawalService_ConfirmWithdrawal_NotAdmin(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _, _, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	err := svc.ConfirmWithdrawal(ctx, 42, 9999)

	assert.ErrorIs(t, err, ErrUnauthorized)

	// No unit of work is even opened for an unauthorized caller
	mockFactory.AssertNotCalled(t, "Create")
	mockWithdrawalRepo.AssertNotCalled(t, "GetByID")
}

func TestWithdrawalService_RejectWithdrawal_ReturnsItem(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockTxnRepo, mockInventoryRepo, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	request := &models.WithdrawalRequest{
		ID:              42,
		TelegramID:      777,
		InventoryItemID: 5,
		Status:          models.WithdrawalStatusPending,
	}
	activeItem := &models.InventoryItem{ID: 5, TelegramID: 777, ItemType: "ring", Status: models.ItemStatusActive}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWithdrawalRepo.On("GetByID", ctx, int64(42)).Return(request, nil)
	mockWithdrawalRepo.On("UpdateStatus", ctx, int64(42), models.WithdrawalStatusPending, models.WithdrawalStatusRejected).
		Return(nil)
	mockInventoryRepo.On("Transition", ctx, int64(5), models.ItemStatusReserved, models.ItemStatusActive).
		Return(activeItem, nil)

	err := svc.RejectWithdrawal(ctx, 42, 1000)

	require.NoError(t, err)

	// A rejection leaves no mark on the ledger
	mockTxnRepo.AssertNotCalled(t, "Record")
	mockInventoryRepo.AssertExpectations(t)
}

func TestWithdrawalService_ConfirmWithdrawal_UnknownRequest(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, _, _, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWithdrawalRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	err := svc.ConfirmWithdrawal(ctx, 404, 1000)

	assert.ErrorIs(t, err, ErrItemNotAvailable)
}

func TestWithdrawalService_ListPendingWithdrawals(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, _, _, mockWithdrawalRepo := newTestMocks()

	svc := newTestWithdrawalService(mockFactory)

	pending := []*models.PendingWithdrawal{
		{Request: models.WithdrawalRequest{ID: 1}, Username: "alice"},
		{Request: models.WithdrawalRequest{ID: 2}, Username: "bob"},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWithdrawalRepo.On("ListPending", ctx).Return(pending, nil)

	got, err := svc.ListPendingWithdrawals(ctx)

	require.NoError(t, err)
	assert.Equal(t, pending, got)
}
