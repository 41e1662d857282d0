package main

import (
	"context"
	"net/http"
	"os"

	"github.com/neardeal/neardeal-backend/api/routes"
	"github.com/neardeal/neardeal-backend/internal/auth"
	"github.com/neardeal/neardeal-backend/internal/coupons"
	"github.com/neardeal/neardeal-backend/internal/events"
	"github.com/neardeal/neardeal-backend/internal/favorites"
	"github.com/neardeal/neardeal-backend/internal/items"
	"github.com/neardeal/neardeal-backend/internal/organizations"
	"github.com/neardeal/neardeal-backend/internal/reviews"
	"github.com/neardeal/neardeal-backend/internal/stores"
	"github.com/neardeal/neardeal-backend/internal/users"
	"github.com/neardeal/neardeal-backend/pkg/config"
	"github.com/neardeal/neardeal-backend/pkg/db"
	"github.com/neardeal/neardeal-backend/pkg/logger"
	"github.com/neardeal/neardeal-backend/pkg/metrics"
	"github.com/neardeal/neardeal-backend/pkg/migrate"
	"github.com/neardeal/neardeal-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	couponMetrics := metrics.NewCouponMetrics(registry)

	gdb := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gdb),
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	storeService, err := stores.NewService(stores.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create stores service", err)
		os.Exit(1)
	}

	itemService, err := items.NewService(items.NewRepository(gdb), storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create items service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(gdb), stores.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	eventService, err := events.NewService(events.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	organizationService, err := organizations.NewService(organizations.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create organizations service", err)
		os.Exit(1)
	}

	favoriteService, err := favorites.NewService(favorites.NewRepository(gdb), stores.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	couponRepo := coupons.NewRepository(gdb)
	couponService, err := coupons.NewService(couponRepo, coupons.NewCatalog(couponRepo), storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupons service", err)
		os.Exit(1)
	}

	issuanceService, err := coupons.NewIssuanceService(coupons.IssuanceServiceParams{
		DB:           dbClient,
		Repo:         couponRepo,
		Ledger:       coupons.NewQuotaLedger(couponRepo),
		Memberships:  organizationService,
		CouponConfig: cfg.Coupon,
		Metrics:      couponMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create issuance service", err)
		os.Exit(1)
	}

	activation, err := coupons.NewActivationStateMachine(dbClient, couponRepo, cfg.Coupon, couponMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create activation state machine", err)
		os.Exit(1)
	}

	redemption, err := coupons.NewRedemptionVerifier(dbClient, couponRepo, activation, couponMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create redemption verifier", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Registry:      registry,
			Auth:          authService,
			Users:         userService,
			Stores:        storeService,
			Items:         itemService,
			Reviews:       reviewService,
			Events:        eventService,
			Organizations: organizationService,
			Favorites:     favoriteService,
			Coupons:       couponService,
			Issuance:      issuanceService,
			Activation:    activation,
			Redemption:    redemption,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
