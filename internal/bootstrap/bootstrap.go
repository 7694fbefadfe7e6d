package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hkmu/coursehub/internal/app/controllers"
	"github.com/hkmu/coursehub/internal/app/jobs"
	"github.com/hkmu/coursehub/internal/app/migrations"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/app/routes"
	"github.com/hkmu/coursehub/internal/app/services"
	"github.com/hkmu/coursehub/internal/app/web"
	"github.com/hkmu/coursehub/internal/config"
	"github.com/hkmu/coursehub/internal/db"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/auth"
	"github.com/hkmu/coursehub/internal/pkg/logger"
	"github.com/hkmu/coursehub/internal/pkg/oauth"
	"github.com/hkmu/coursehub/internal/pkg/session"
	"github.com/hkmu/coursehub/internal/seed"
)

// Dependencies holds everything the server needs beyond the HTTP listener.
type Dependencies struct {
	Services        *services.Services
	Repos           *repositories.Repositories
	JWTService      *auth.JWTService
	SessionStore    *session.Store
	RedisClient     *redis.Client
	StatsReconciler *jobs.StatsReconciler
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects the pool, applies migrations and seeds the default
// catalogue.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	pool := database.Pool
	lgr.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	migrator := migrations.NewMigrator(pool)
	if err := migrator.ApplyDirectory(ctx, migrationsDir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.Courses(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seeding failed: %w", err)
	}

	return pool, nil
}

// SetupRedis connects the Redis client backing the session store.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}

// BuildDependencies wires repositories, services, auth plumbing and the
// background reconciler.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	repos := repositories.NewRepositories(pool)

	provider := oauth.NewGoogleProvider(
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.GoogleCallbackURL,
	)
	svcs := services.NewServices(pool, repos, provider)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTokenTTL())
	sessionStore := session.NewStore(redisClient, cfg.SessionTTL())

	reconciler := jobs.NewStatsReconciler(pool, repos, svcs.Stats)

	return &Dependencies{
		Services:        svcs,
		Repos:           repos,
		JWTService:      jwtService,
		SessionStore:    sessionStore,
		RedisClient:     redisClient,
		StatsReconciler: reconciler,
		Logger:          lgr,
	}, nil
}

// SetupRouter builds the gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 12 << 20

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "static")

	authMiddleware := middleware.NewAuthMiddleware(
		deps.JWTService, deps.SessionStore, cfg.Session.CookieName)

	webHandlers := web.NewHandlers(
		deps.Services, deps.SessionStore,
		cfg.Session.CookieName, cfg.SessionTTL(), cfg.Session.Secure)

	routes.SetupRouter(
		router,
		webHandlers,
		controllers.NewAuthController(deps.JWTService),
		controllers.NewCourseController(deps.Services.Course),
		controllers.NewReviewController(deps.Services.Review),
		controllers.NewMaterialController(deps.Services.Material),
		authMiddleware,
	)

	return router
}
