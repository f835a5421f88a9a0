package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"starcasino/events"
	"starcasino/models"
	"starcasino/rewards"
)

type bonusService struct {
	uowFactory UnitOfWorkFactory
	bonus      rewards.BonusRange
	now        func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewBonusService creates a new bonus service over a validated bonus range
func NewBonusService(uowFactory UnitOfWorkFactory, bonus rewards.BonusRange, rng *rand.Rand) BonusService {
	return &bonusService{
		uowFactory: uowFactory,
		bonus:      bonus,
		now:        time.Now,
		rng:        rng,
	}
}

func (s *bonusService) ClaimBonus(ctx context.Context, telegramID int64) (*models.BonusResult, error) {
	var result *models.BonusResult

	err := withConflictRetry(ctx, func() error {
		uow := s.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer uow.Rollback() // No-op if already committed

		now := s.now().UTC()

		user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		if user.LastBonusClaim != nil {
			if hours := HoursUntilNextBonus(*user.LastBonusClaim, now); hours > 0 {
				return &CooldownActiveError{HoursRemaining: hours}
			}
		}

		amount := s.drawBonus()

		// Credit and claim stamp share one conditional update, so a claim
		// racing past the read above still cannot double-credit.
		newBalance, err := uow.UserRepository().CreditBonus(ctx, telegramID, amount, now, now.Add(-BonusCooldown))
		if err != nil {
			return err
		}

		txn := &models.Transaction{
			TelegramID: telegramID,
			Type:       models.TransactionTypeBonus,
			Amount:     amount,
			Details: map[string]any{
				"claimed_at": now.Format(time.RFC3339),
			},
		}
		if err := RecordBalanceChange(ctx, uow, txn, newBalance); err != nil {
			return err
		}

		uow.EventBus().Publish(events.BonusClaimedEvent{
			TelegramID: telegramID,
			Amount:     amount,
		})

		if err := uow.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		result = &models.BonusResult{AmountWon: amount, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"telegramID": telegramID,
		"amount":     result.AmountWon,
	}).Info("Bonus claimed")

	return result, nil
}

func (s *bonusService) drawBonus() int64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.bonus.Draw(s.rng)
}
