package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jkmondal/shopline-backend/api/routes"
	authsvc "github.com/jkmondal/shopline-backend/internal/auth"
	"github.com/jkmondal/shopline-backend/internal/cart"
	"github.com/jkmondal/shopline-backend/internal/mailer"
	"github.com/jkmondal/shopline-backend/internal/media"
	"github.com/jkmondal/shopline-backend/internal/orders"
	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/internal/users"
	"github.com/jkmondal/shopline-backend/internal/wishlist"
	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/db"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	"github.com/jkmondal/shopline-backend/pkg/logger"
	"github.com/jkmondal/shopline-backend/pkg/migrate"
	"github.com/jkmondal/shopline-backend/pkg/redis"
	"github.com/jkmondal/shopline-backend/pkg/storage/gcs"
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
	})

	var dbClient *db.Client
	if cfg.FeatureFlags.UseSQLite {
		dbClient, err = db.NewSQLite(context.Background(), cfg.DB.DSN, logg)
	} else {
		dbClient, err = db.New(context.Background(), cfg.DB, logg)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.UseSQLite {
		// The goose migrations target Postgres; the sqlite path gets
		// its schema straight from the models.
		if cfg.FeatureFlags.AutoMigrate {
			if err := dbClient.DB().AutoMigrate(
				&models.User{},
				&models.Product{},
				&models.Comment{},
				&models.CartItem{},
				&models.Order{},
				&models.OrderItem{},
				&models.WishlistEntry{},
			); err != nil {
				logg.Error(context.Background(), "failed to run auto migration", err)
				os.Exit(1)
			}
		}
	} else if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
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

	var gcsClient *gcs.Client
	if cfg.Media.Backend == "gcs" {
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap object storage", err)
			os.Exit(1)
		}
	}

	mediaService, err := media.NewService(cfg.Media, gcsClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	var mail mailer.Mailer
	if cfg.Sendgrid.APIKey != "" {
		mail, err = mailer.NewSendgrid(cfg.Sendgrid)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
	} else {
		mail = mailer.NewNoop()
	}

	userRepo := users.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	wishlistRepo := wishlist.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:    userRepo,
		JWTCfg:      cfg.JWT,
		PasswordCfg: cfg.Password,
		Mailer:      mail,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{
		UserRepo:    userRepo,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.ServiceParams{
		ProductRepo: productRepo,
		UserRepo:    userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:     cartRepo,
		ProductRepo:  productRepo,
		DB:           dbClient,
		EnforceStock: cfg.FeatureFlags.EnforceStock,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		OrderRepo: orderRepo,
		CartRepo:  cartRepo,
		UserRepo:  userRepo,
		DB:        dbClient,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:     authService,
			Users:    userService,
			Products: productService,
			Cart:     cartService,
			Orders:   orderService,
			Wishlist: wishlistService,
			Media:    mediaService,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			_ = server.Close()
		}
	}
}
