package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	appAuth "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/auth"
	appControllers "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/controllers"
	appMigrations "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/migrations"
	appRepos "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	appRoutes "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/routes"
	appServices "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/services"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/config"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/db"
	appMiddleware "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/middleware"
	pkgAuth "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/auth"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/cache"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/calendar"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/seed"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultConfigPath is used when no path is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos           *appRepos.Repositories
	Tx              appRepos.TxManager
	Services        *appServices.Services
	JWTService      *pkgAuth.JWTService
	AuthzService    *appAuth.AuthorizationService
	AuthMiddleware  *appMiddleware.AuthMiddleware
	ClassController *appControllers.ClassController
	CPRController   *appControllers.CPRController
	Database        *db.PostgresDB
	Logger          zerolog.Logger

	closers []func()
}

// Close releases the cache client and any other resource opened by BuildDependencies.
// The database is owned by the caller.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("timezone", cfg.Schedule.TimeZone).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies every pending file of the configured migrations directory.
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SetupCache connects to redis when an address is configured. Without one, or when redis
// is unreachable, progress reports are simply not cached.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (cache.Cache, func()) {
	if cfg.Redis.Addr == "" {
		lgr.Info().Msg("Redis not configured, progress cache disabled")
		return cache.Nop{}, func() {}
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, progress cache disabled")
		return cache.Nop{}, func() {}
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis progress cache enabled")
	return cache.NewRedisCache(client, "pwioi:"), func() {
		if err := client.Close(); err != nil {
			lgr.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}

// SetupCalendar returns the Google calendar client when sync is enabled.
func SetupCalendar(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (calendar.Client, error) {
	if !cfg.Calendar.Enabled {
		lgr.Info().Msg("Calendar sync disabled")
		return calendar.Noop{}, nil
	}

	client, err := calendar.NewGoogleClient(ctx, cfg.Calendar.CredentialsFile, cfg.Calendar.CalendarID)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize calendar client")
		return nil, fmt.Errorf("failed to initialize calendar client: %w", err)
	}
	lgr.Info().Str("calendarID", cfg.Calendar.CalendarID).Msg("Calendar sync enabled")
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}

	calendarClient, err := SetupCalendar(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	progressCache, closeCache := SetupCache(ctx, cfg, lgr)
	deps.closers = append(deps.closers, closeCache)

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Tx = appRepos.NewTxManager(database)

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:           deps.Repos,
		Tx:              deps.Tx,
		Calendar:        calendarClient,
		Cache:           progressCache,
		ProgressTTL:     helpers.ParseDuration(cfg.Redis.ProgressTTL, 10*time.Minute),
		Location:        cfg.Location(),
		SyncConcurrency: cfg.Calendar.SyncConcurrency,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.ClassController = appControllers.NewClassController(deps.Services.Schedule, deps.AuthzService, cfg.Location())
	deps.CPRController = appControllers.NewCPRController(deps.Services.CPR, deps.AuthzService)

	return deps, nil
}

// SeedDefaultData loads development data when enabled in the configuration.
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Database.Seed {
		return
	}
	if err := seed.CreateDefaultData(ctx, deps.Database.Pool, deps.Services, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// corsConfig builds the CORS policy from the configured origin list
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", appMiddleware.RequestIDHeader},
		ExposeHeaders: []string{appMiddleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

// healthHandler reports whether the database answers
func healthHandler(database *db.PostgresDB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx); err != nil {
			status := "unavailable"
			if errors.Is(err, context.DeadlineExceeded) {
				status = "timeout"
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": status, "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	// Lets services read the request logger from the gin context.
	router.ContextWithFallback = true
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.ClassController,
		deps.CPRController,
		deps.AuthMiddleware,
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler(deps.Database))

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
