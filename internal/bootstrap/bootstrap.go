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

	appControllers "github.com/peerlist/peerlist-backend/internal/app/controllers"
	appMigrations "github.com/peerlist/peerlist-backend/internal/app/migrations"
	appRepos "github.com/peerlist/peerlist-backend/internal/app/repositories"
	appRoutes "github.com/peerlist/peerlist-backend/internal/app/routes"
	appServices "github.com/peerlist/peerlist-backend/internal/app/services"
	"github.com/peerlist/peerlist-backend/internal/config"
	"github.com/peerlist/peerlist-backend/internal/db"
	appMiddleware "github.com/peerlist/peerlist-backend/internal/middleware"
	pkgAuth "github.com/peerlist/peerlist-backend/internal/pkg/auth"
	"github.com/peerlist/peerlist-backend/internal/pkg/logger"
	"github.com/peerlist/peerlist-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ResultsService      *appServices.ResultsService
	PeerService         *appServices.PeerService
	RankboardService    *appServices.RankboardService
	ConsentService      *appServices.ConsentService
	AccountService      *appServices.AccountService
	MeController        *appControllers.MeController
	PeerController      *appControllers.PeerController
	RankboardController *appControllers.RankboardController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
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

	// Demo cohort only outside production.
	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	students := deps.Repos.StudentRepository
	results := deps.Repos.ResultsRepository
	consent := deps.Repos.ConsentRepository

	deps.ResultsService = appServices.NewResultsService(students, results)
	deps.PeerService = appServices.NewPeerService(students, results)
	deps.RankboardService = appServices.NewRankboardService(students, results)
	deps.ConsentService = appServices.NewConsentService(students, consent)
	deps.AccountService = appServices.NewAccountService(students, results, consent)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.MeController = appControllers.NewMeController(deps.ResultsService, deps.ConsentService, deps.AccountService)
	deps.PeerController = appControllers.NewPeerController(deps.PeerService)
	deps.RankboardController = appControllers.NewRankboardController(deps.RankboardService)

	return deps, nil
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.MeController,
		deps.PeerController,
		deps.RankboardController,
		deps.AuthMiddleware,
	)

	return router
}
