package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starcasino/events"
	"starcasino/models"
	"starcasino/repository/testutil"
)

func TestUnitOfWork_CommitPersistsBothWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	_, err := userRepo.Create(ctx, 777, "alice", 100)
	require.NoError(t, err)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	newBalance, err := uow.UserRepository().DeductBalance(ctx, 777, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(75), newBalance)

	txn := testutil.CreateTestTransaction(777, models.TransactionTypeCaseOpen, -25)
	require.NoError(t, uow.TransactionRepository().Record(ctx, txn))

	require.NoError(t, uow.Commit())

	user, err := userRepo.GetByTelegramID(ctx, 777)
	require.NoError(t, err)
	assert.Equal(t, int64(75), user.Balance)

	txns, err := NewTransactionRepository(testDB.DB).GetByUser(ctx, 777, 10)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeCaseOpen, txns[0].Type)
	assert.Equal(t, int64(-25), txns[0].Amount)
}

func TestUnitOfWork_RollbackDiscardsBothWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	_, err := userRepo.Create(ctx, 777, "alice", 100)
	require.NoError(t, err)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err = uow.UserRepository().DeductBalance(ctx, 777, 25)
	require.NoError(t, err)

	txn := testutil.CreateTestTransaction(777, models.TransactionTypeCaseOpen, -25)
	require.NoError(t, uow.TransactionRepository().Record(ctx, txn))

	require.NoError(t, uow.Rollback())

	// Neither the debit nor the ledger row survived
	user, err := userRepo.GetByTelegramID(ctx, 777)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Balance)

	txns, err := NewTransactionRepository(testDB.DB).GetByUser(ctx, 777, 10)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestUnitOfWork_EventsFlushOnlyAfterCommit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBonusClaimed, func(ctx context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)

	// Rolled back: the event never reaches the bus
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	uow.EventBus().Publish(events.BonusClaimedEvent{TelegramID: 777, Amount: 10})
	require.NoError(t, uow.Rollback())

	select {
	case <-received:
		t.Fatal("event delivered despite rollback")
	case <-time.After(100 * time.Millisecond):
	}

	// Committed: the event is flushed
	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	uow.EventBus().Publish(events.BonusClaimedEvent{TelegramID: 777, Amount: 10})
	require.NoError(t, uow.Commit())

	select {
	case e := <-received:
		ev, ok := e.(events.BonusClaimedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(777), ev.TelegramID)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered after commit")
	}
}

func TestUnitOfWork_RollbackAfterCommitIsNoop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	_, err := userRepo.Create(ctx, 777, "alice", 100)
	require.NoError(t, err)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err = uow.UserRepository().AddBalance(ctx, 777, 10)
	require.NoError(t, err)

	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback())

	user, err := userRepo.GetByTelegramID(ctx, 777)
	require.NoError(t, err)
	assert.Equal(t, int64(110), user.Balance)
}
