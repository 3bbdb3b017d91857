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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/deniz/careerhub/internal/app/controllers"
	appMigrations "github.com/deniz/careerhub/internal/app/migrations"
	appRepos "github.com/deniz/careerhub/internal/app/repositories"
	appRoutes "github.com/deniz/careerhub/internal/app/routes"
	appServices "github.com/deniz/careerhub/internal/app/services"
	"github.com/deniz/careerhub/internal/config"
	"github.com/deniz/careerhub/internal/db"
	appMiddleware "github.com/deniz/careerhub/internal/middleware"
	pkgAuth "github.com/deniz/careerhub/internal/pkg/auth"
	"github.com/deniz/careerhub/internal/pkg/flash"
	"github.com/deniz/careerhub/internal/pkg/logger"
	"github.com/deniz/careerhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	OpportunityService     *appServices.OpportunityService
	ApplicationService     *appServices.ApplicationService
	NotificationService    *appServices.NotificationService
	ProfileService         *appServices.ProfileService
	AuthController         *appControllers.AuthController
	OpportunityController  *appControllers.OpportunityController
	ManageController       *appControllers.ManageController
	NotificationController *appControllers.NotificationController
	ProfileController      *appControllers.ProfileController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	SessionService         *pkgAuth.SessionService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the demo accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding is best-effort, a populated database just skips it
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:   cfg.Session.Secret,
		TokenExp:    cfg.SessionExpiration(),
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.Repos.Profiles, lgr)
	deps.OpportunityService = appServices.NewOpportunityService(deps.Repos.Opportunities, deps.Repos.Applications)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.Profiles,
		deps.Repos.Opportunities,
		deps.Repos.Saves,
		deps.Repos.Applications,
		deps.Repos.Notifications,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.Profiles, deps.Repos.Notifications)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.Profiles)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService, cfg.Session.CookieName)

	// Flash cookies follow the session cookie's transport requirement
	flash.Configure(cfg.Session.CookieSecure)

	deps.AuthController = appControllers.NewAuthController(
		deps.AuthService,
		deps.SessionService,
		appControllers.SessionCookie{
			Name:   cfg.Session.CookieName,
			MaxAge: int(cfg.SessionExpiration().Seconds()),
			Secure: cfg.Session.CookieSecure,
		},
	)
	deps.OpportunityController = appControllers.NewOpportunityController(
		deps.OpportunityService,
		deps.ApplicationService,
		deps.ProfileService,
	)
	deps.ManageController = appControllers.NewManageController(deps.OpportunityService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)

	return deps, nil
}

// SetupRouter configures the Gin engine with templates, static assets and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.NoRoute(func(c *gin.Context) {
		c.HTML(404, "404.html", gin.H{})
	})

	router.LoadHTMLGlob(cfg.Server.TemplatesGlob)
	router.Static("/static", cfg.Server.StaticDir)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.OpportunityController,
		deps.ManageController,
		deps.NotificationController,
		deps.ProfileController,
		deps.AuthMiddleware,
	)

	return router
}
