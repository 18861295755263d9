package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/cart"
	"quote-storefront/internal/checkout"
	"quote-storefront/internal/client"
	"quote-storefront/internal/config"
	"quote-storefront/internal/gate"
	"quote-storefront/internal/handler"
	"quote-storefront/internal/logger"
	"quote-storefront/internal/middleware"
	"quote-storefront/internal/registry"
	"quote-storefront/internal/repository"
	"quote-storefront/internal/server"
	"quote-storefront/internal/service"
	"quote-storefront/internal/view"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		return err
	}

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)

	if err := productRepo.Seed(ctx); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	store, err := newCartStore(ctx, cfg, cartRepo, log)
	if err != nil {
		return err
	}

	secret := cfg.Session.Secret
	if secret == "" {
		if cfg.IsProduction() {
			return errors.New("SESSION_SECRET is required in production")
		}
		secret = uuid.NewString()
		log.Warn("SESSION_SECRET not set, using a random secret; sessions end on restart")
	}
	tokens := auth.NewTokenService(secret, cfg.Session.TTL)

	// visitor reports and order notifications keep separate breakers
	visitorChannel := client.NewTelegramClient(&cfg.Telegram, "visitors", log)
	orderChannel := client.NewTelegramClient(&cfg.Telegram, "orders", log)
	geoClient := client.NewGeoClient(&cfg.Geo)

	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(productRepo)
	trackingService := service.NewTrackingService(geoClient, visitorChannel)
	emailService := service.NewLogEmailService(log, cfg.Checkout.ChatURL)

	gates := registry.New[*gate.Gate](cfg.VisitorIdleTTL)
	checkouts := registry.New[*checkout.Machine](cfg.VisitorIdleTTL)
	go gates.Run(ctx, sweepInterval)
	go checkouts.Run(ctx, sweepInterval)

	newMachine := func(visitorID string) *checkout.Machine {
		return checkout.NewMachine(checkout.Deps{
			Cart:     cart.Bind(store, visitorID),
			Auth:     userService,
			Notifier: orderChannel,
			Mailer:   emailService,
			Delay:    checkout.Delay(cfg.Checkout.ProcessingDelay),
			ChatURL:  cfg.Checkout.ChatURL,
			Log:      log.With(zap.String("visitor_id", visitorID)),
		})
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	secure := cfg.IsProduction()
	guard := middleware.NewGateGuard(ctx, gates, trackingService, log)
	srv := server.NewServer(
		renderer,
		server.Handlers{
			Page: handler.NewPageHandler(catalogService, store, cfg.Checkout.ChatURL, log),
			Auth: handler.NewAuthHandler(userService, tokens, store, secure, log),
			Cart: handler.NewCartHandler(store, catalogService, checkouts, newMachine, tokens, secure, cfg.Checkout.ChatURL, log),
			Gate: handler.NewGateHandler(guard),
		},
		guard,
		middleware.Session(tokens, secure),
		secure,
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", zap.String("addr", serverAddr), zap.String("cart_backend", cfg.Cart.Backend))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func newCartStore(ctx context.Context, cfg *config.Config, cartRepo repository.CartRepository, log *zap.Logger) (cart.Store, error) {
	switch cfg.Cart.Backend {
	case "database":
		return cart.NewDatabaseStore(cartRepo), nil
	case "redis":
		rdb, err := client.InitRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("cart store on redis", zap.String("addr", cfg.Redis.Addr))
		return cart.NewRedisStore(rdb, cfg.Redis.CartTTL), nil
	default:
		return nil, fmt.Errorf("unknown cart backend %q", cfg.Cart.Backend)
	}
}
