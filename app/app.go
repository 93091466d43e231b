package app

import (
	"context"
	"easy-shop/config"
	"easy-shop/libs"
	"easy-shop/middleware"
	"easy-shop/repositories"
	"easy-shop/routes"
	"easy-shop/services"
	"easy-shop/utils"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the router and the connections it owns.
type App struct {
	Router *gin.Engine

	db     *pgxpool.Pool
	redis  *redis.Client
	logger *zap.Logger
}

// New connects the backing stores and wires every service into the router.
// Redis, Cloudinary and SMTP are optional; the features that need them are
// disabled with a warning when they are not configured.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := config.RunMigrations(cfg, logger); err != nil {
		return nil, err
	}

	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)

	var productCache services.ProductCache
	redisClient := config.ConnectRedis(cfg, logger)
	if redisClient != nil {
		productCache = repositories.NewProductCache(redisClient)
	}

	var images services.ImageStore
	store, err := libs.NewCloudinaryStore(cfg, logger)
	switch {
	case err == nil:
		images = store
	case errors.Is(err, libs.ErrBlobStoreNotConfigured):
		logger.Warn("cloudinary not configured, image uploads disabled")
	default:
		db.Close()
		return nil, err
	}

	var notifier services.OrderNotifier
	if mailer, err := libs.NewMailer(cfg); err == nil {
		notifier = mailer
	} else {
		logger.Warn("smtp not configured, order confirmation emails disabled")
	}

	sessions := services.NewSessionService(cfg.AdminEmail, cfg.JWTExpiry)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	catalog := services.NewCatalogService(productRepo, productCache, cfg.StoreTimeout, logger)
	auth := services.NewAuthService(userRepo, sessions, tokens, cfg.StoreTimeout, logger)

	if cfg.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL not set, admin console disabled")
	} else if err := auth.EnsureAdminAccount(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		db.Close()
		return nil, err
	}

	deps := routes.Dependencies{
		Auth:         auth,
		Catalog:      catalog,
		Cart:         services.NewCartService(catalog),
		Checkout:     services.NewCheckoutService(orderRepo, notifier, cfg.StoreTimeout, logger),
		Orders:       services.NewOrderService(orderRepo, cfg.StoreTimeout),
		Admin:        services.NewAdminService(productRepo, orderRepo, images, catalog, cfg.MaxUploadSize, cfg.StoreTimeout, logger),
		Feeds:        services.NewFeedService(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.RatesAPIURL, cfg.HTTPClientTimeout, logger),
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRateLimit, 5, logger),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	router.MaxMultipartMemory = cfg.MaxUploadSize

	routes.SetupRoutes(router, deps)

	return &App{
		Router: router,
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	a.db.Close()
	_ = a.logger.Sync()
}
