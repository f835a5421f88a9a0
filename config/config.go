package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Economy configuration
	CasePrice       int64
	RoulettePrice   int64
	BonusMin        int64
	BonusMax        int64
	StartingBalance int64

	// Admin configuration
	AdminTelegramIDs []int64 // Telegram IDs allowed to act on withdrawals and balances

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Economy settings with defaults
		CasePrice:       25,
		RoulettePrice:   50,
		BonusMin:        5,
		BonusMax:        20,
		StartingBalance: 0,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if price := os.Getenv("CASE_PRICE"); price != "" {
		if parsed, err := strconv.ParseInt(price, 10, 64); err == nil {
			config.CasePrice = parsed
		}
	}
	if price := os.Getenv("ROULETTE_PRICE"); price != "" {
		if parsed, err := strconv.ParseInt(price, 10, 64); err == nil {
			config.RoulettePrice = parsed
		}
	}
	if min := os.Getenv("BONUS_MIN"); min != "" {
		if parsed, err := strconv.ParseInt(min, 10, 64); err == nil {
			config.BonusMin = parsed
		}
	}
	if max := os.Getenv("BONUS_MAX"); max != "" {
		if parsed, err := strconv.ParseInt(max, 10, 64); err == nil {
			config.BonusMax = parsed
		}
	}
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsed
		}
	}

	// Parse admin Telegram IDs
	if adminIDs := os.Getenv("ADMIN_TELEGRAM_IDS"); adminIDs != "" {
		idStrings := strings.Split(adminIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr != "" {
				if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
					config.AdminTelegramIDs = append(config.AdminTelegramIDs, id)
				}
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	if config.CasePrice <= 0 || config.RoulettePrice <= 0 {
		return nil, fmt.Errorf("draw prices must be positive")
	}

	return config, nil
}
