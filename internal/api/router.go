package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/calckit/calculator-service/internal/api/handler"
	"github.com/calckit/calculator-service/internal/api/middleware"
	"github.com/calckit/calculator-service/internal/core/ports"
	"github.com/calckit/calculator-service/internal/core/security"
	"github.com/calckit/calculator-service/internal/core/service"
	"github.com/calckit/calculator-service/internal/infrastructure/config"
	mongodb "github.com/calckit/calculator-service/internal/infrastructure/db/mongo"
	redisdb "github.com/calckit/calculator-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity pipeline (recorder + service) is constructed by the caller
// because its worker pool lifecycle belongs to the process, not the router.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	recorder ports.ActivityRecorder,
	activity ports.ActivityService,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("calculator"))

	// --- Dependencies ---
	hasher := security.NewPolicy(cfg.HashScheme)
	codec := security.NewTokenCodec(cfg.SecretKey)

	userRepo := mongodb.NewUserRepository(db)
	calcRepo := mongodb.NewCalculationRepository(db)
	throttle := redisdb.NewLoginLimiter(rdb)

	tokenTTL := time.Duration(cfg.TokenTTLSeconds) * time.Second
	authService := service.NewAuthService(userRepo, hasher, codec, throttle, recorder, tokenTTL, log)
	calcService := service.NewCalculationService(calcRepo, recorder, log)

	authHandler := handler.NewAuthHandler(authService)
	calcHandler := handler.NewCalculationHandler(calcService)
	activityHandler := handler.NewActivityHandler(activity)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	v1 := e.Group("/v1", middleware.Auth(codec, userRepo))
	v1.POST("/calculations", calcHandler.Create)
	v1.GET("/calculations", calcHandler.List)
	v1.GET("/calculations/:id", calcHandler.Get)
	v1.PUT("/calculations/:id", calcHandler.Update)
	v1.DELETE("/calculations/:id", calcHandler.Delete)
	v1.GET("/activity", activityHandler.List)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
