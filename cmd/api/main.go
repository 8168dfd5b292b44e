package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/cache"
	"github.com/horsh321/teem-server/internal/config"
	"github.com/horsh321/teem-server/internal/database"
	"github.com/horsh321/teem-server/internal/handler"
	"github.com/horsh321/teem-server/internal/media"
	"github.com/horsh321/teem-server/internal/notify"
	"github.com/horsh321/teem-server/internal/pricing"
	"github.com/horsh321/teem-server/internal/repository"
	"github.com/horsh321/teem-server/internal/router"
	"github.com/horsh321/teem-server/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Money is serialised as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting teem API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	db := database.NewHandle(cfg.Database, logger)
	pool, err := db.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize cache
	store, err := cache.New(ctx, cfg.Cache, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise cache, continuing without it")
		store = cache.NewNoopStore()
	}
	defer store.Close()

	// Initialize repositories
	merchantRepo := repository.NewCachedMerchantRepository(
		repository.NewMerchantRepository(pool, logger), store, cfg.Cache.TTL, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)

	// Initialize pricing pipeline
	policy := pricing.Policy{
		DefaultShippingFee: cfg.Pricing.DefaultShippingFee,
		AllowNegativeTotal: cfg.Pricing.AllowNegativeTotal,
	}
	quoter := pricing.NewQuoter(
		pricing.NewDiscountResolver(repository.NewDiscountRepository(pool, logger), logger),
		pricing.NewTaxCalculator(repository.NewTaxRepository(pool, logger), logger),
		pricing.NewShippingResolver(repository.NewShippingRepository(pool, logger), policy.DefaultShippingFee, logger),
		policy,
		logger,
	)

	// Initialize mail
	var mailer notify.Mailer
	if cfg.Mail.Enabled {
		mailer = notify.NewSendGridMailer(cfg.Mail.SendGridAPIKey, notify.DefaultSendGridHost, logger)
	} else {
		mailer = notify.NewLogMailer(logger)
		logger.Info().Msg("mail disabled, notifications will be logged only")
	}
	notifier := notify.NewNotifier(mailer, cfg.Mail, logger)

	// Initialize media store
	mediaStore := media.New(ctx, cfg.Media, logger)
	avatarURL := media.DefaultAvatarURL(mediaStore, cfg.Media.DefaultAvatarKey)

	// Initialize services
	ledger := service.NewLedgerUpdater(orderRepo, customerRepo, service.LedgerScope(cfg.Ledger.Scope), avatarURL, logger)
	orderService := service.NewOrderService(
		orderRepo,
		merchantRepo,
		userRepo,
		quoter,
		ledger,
		notifier,
		cfg.Orders.GuardTransitions,
		logger,
	)
	customerService := service.NewCustomerService(customerRepo, orderRepo, merchantRepo, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)

	// Initialize router
	opts := router.Options{
		Verifier:       auth.NewVerifier(cfg.Auth),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Ready: func(ctx context.Context) error {
			_, err := db.Ensure(ctx)
			return err
		},
		Logger: logger,
	}
	if local, ok := mediaStore.(*media.LocalStore); ok {
		opts.Media = local.Handler()
	}
	mux := router.New(orderHandler, customerHandler, opts)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
