package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// HTTP server
	ListenAddr string

	// Database configuration
	DatabaseURL string

	// Redis (leaderboard cache, rate limits)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Player session tokens
	JWTSecret string

	// Treasury collaborator (external chain settlement)
	TreasuryURL    string
	TreasuryToken  string
	DepositAddress string

	// Betting limits, cents
	MinBet        int64
	MaxBet        int64
	FreerollCents int64

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	mu       sync.Mutex
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:   "test",
		ListenAddr:    ":0",
		JWTSecret:     "test-secret",
		MinBet:        100,
		MaxBet:        1_000_000,
		FreerollCents: 500,
	}
}

// load loads configuration from the environment, reading a .env file first
// if one is present.
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		ListenAddr:  os.Getenv("LISTEN_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		TreasuryURL:    os.Getenv("TREASURY_URL"),
		TreasuryToken:  os.Getenv("TREASURY_TOKEN"),
		DepositAddress: os.Getenv("DEPOSIT_ADDRESS"),

		// Betting limits with defaults
		MinBet:        100,       // $1.00
		MaxBet:        1_000_000, // $10,000.00
		FreerollCents: 500,       // $5.00

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.RedisAddr == "" {
		config.RedisAddr = "localhost:6379"
	}

	// Override defaults if environment variables are set
	if db := os.Getenv("REDIS_DB"); db != "" {
		if parsed, err := strconv.Atoi(db); err == nil {
			config.RedisDB = parsed
		}
	}
	if min := os.Getenv("MIN_BET_CENTS"); min != "" {
		if parsed, err := strconv.ParseInt(min, 10, 64); err == nil {
			config.MinBet = parsed
		}
	}
	if max := os.Getenv("MAX_BET_CENTS"); max != "" {
		if parsed, err := strconv.ParseInt(max, 10, 64); err == nil {
			config.MaxBet = parsed
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
		if config.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
	}

	return config, nil
}
