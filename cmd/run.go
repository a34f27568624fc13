package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"casino/api"
	"casino/cache"
	"casino/config"
	"casino/database"
	"casino/events"
	"casino/repository"
	"casino/service"
	"casino/treasury"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting casino server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Redis is optional: without it stats reads hit the database and
	// rate limiting is skipped.
	var (
		statsCache service.StatsCache
		limiter    api.RateLimiter
	)
	redisCache, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	} else {
		statsCache = redisCache
		limiter = redisCache
		defer redisCache.Close()

		eventBus.Subscribe(events.EventTypeBetSettled, func(ctx context.Context, _ events.Event) {
			redisCache.InvalidateStats(ctx)
		})
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Treasury collaborator for deposits and withdrawal claims
	treasuryClient := treasury.NewClient(treasury.Config{
		BaseURL: cfg.TreasuryURL,
		Token:   cfg.TreasuryToken,
	})

	// Initialize services
	log.Println("Initializing services...")
	accountService := service.NewAccountService(uowFactory)
	bettingService := service.NewBettingService(uowFactory)
	depositService := service.NewDepositService(uowFactory, treasuryClient)
	withdrawalService := service.NewWithdrawalService(uowFactory, treasuryClient)
	statsService := service.NewStatsService(uowFactory, statsCache)
	tokenService := service.NewTokenService(cfg.JWTSecret, 0)
	log.Println("Services initialized successfully")

	router := api.NewRouter(cfg, api.Handlers{
		Games:    api.NewGameHandler(bettingService),
		Accounts: api.NewAccountHandler(accountService, depositService, withdrawalService, tokenService),
		Stats:    api.NewStatsHandler(statsService),
		Feed:     api.NewLiveFeed(eventBus),
		Tokens:   tokenService,
		Auth:     accountService,
		Limiter:  limiter,
	})

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s in %s mode...", cfg.ListenAddr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
