package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"starcasino/config"
	"starcasino/database"
	"starcasino/events"
	"starcasino/repository"
	"starcasino/rewards"
	"starcasino/service"
)

// Services bundles the economy engine's boundary operations for the callers
// that sit outside this repository (bot front-end, admin tooling).
type Services struct {
	Users       service.UserService
	Economy     service.EconomyService
	Bonus       service.BonusService
	Withdrawals service.WithdrawalService
	Admin       service.AdminService
	EventBus    *events.Bus
}

// Run initializes the economy engine and blocks until the context is cancelled
func Run(ctx context.Context) error {
	log.Info("Starting star casino economy engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	if _, err := Wire(db, cfg); err != nil {
		return err
	}

	log.WithField("environment", cfg.Environment).Info("Economy engine is running")
	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// Wire validates the reward configuration and assembles the service graph.
// A reward table that fails validation aborts startup; a misconfigured
// surface must never serve traffic.
func Wire(db *database.DB, cfg *config.Config) (*Services, error) {
	caseTable, err := rewards.DefaultCaseTable()
	if err != nil {
		return nil, err
	}
	rouletteTable, err := rewards.DefaultRouletteTable()
	if err != nil {
		return nil, err
	}
	bonusRange, err := rewards.NewBonusRange(cfg.BonusMin, cfg.BonusMax)
	if err != nil {
		return nil, err
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	authorizer := service.NewStaticAuthorizer(cfg.AdminTelegramIDs)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	services := &Services{
		Users:       service.NewUserService(uowFactory, cfg.StartingBalance),
		Economy:     service.NewEconomyService(uowFactory, caseTable, rouletteTable, cfg.CasePrice, cfg.RoulettePrice, rng),
		Bonus:       service.NewBonusService(uowFactory, bonusRange, rng),
		Withdrawals: service.NewWithdrawalService(uowFactory, authorizer),
		Admin:       service.NewAdminService(uowFactory, authorizer),
		EventBus:    eventBus,
	}

	// Notification delivery lives outside this repository; the subscriptions
	// here keep an audit trail of what a notifier would send.
	eventBus.Subscribe(events.EventTypeWithdrawalRequested, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.WithdrawalRequestedEvent); ok {
			log.WithFields(log.Fields{
				"telegramID": ev.TelegramID,
				"requestID":  ev.RequestID,
			}).Info("Withdrawal request queued for admins")
		}
	})
	eventBus.Subscribe(events.EventTypeWithdrawalResolved, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.WithdrawalResolvedEvent); ok {
			log.WithFields(log.Fields{
				"telegramID": ev.TelegramID,
				"requestID":  ev.RequestID,
				"status":     ev.Status,
			}).Info("Withdrawal request resolved")
		}
	})

	log.Info("Services initialized")
	return services, nil
}
