package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/university/internal/app/controllers"
	appMigrations "github.com/yigit/university/internal/app/migrations"
	appRoutes "github.com/yigit/university/internal/app/routes"
	appServices "github.com/yigit/university/internal/app/services"
	"github.com/yigit/university/internal/config"
	"github.com/yigit/university/internal/db"
	appMiddleware "github.com/yigit/university/internal/middleware"
	"github.com/yigit/university/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UniversityService appServices.UniversityService
	ReportController  *appControllers.ReportController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env (if present) and the configuration from
// configDir, then configures the logger from it.
func LoadConfigAndSetupLogger(configDir, environment string) (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to read .env file, using process environment")
	}

	cfg, err := config.LoadConfig(configDir, environment)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	lgr.Debug().
		Str("environment", cfg.App.Environment).
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and applies the schema.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes the controllers over universityService.
func BuildDependencies(universityService appServices.UniversityService, lgr zerolog.Logger) *Dependencies {
	return &Dependencies{
		UniversityService: universityService,
		ReportController:  appControllers.NewReportController(universityService),
		Logger:            lgr,
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
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.ReportController)

	return router
}
