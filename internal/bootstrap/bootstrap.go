package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/upac/carnet-backend/docs" // Generated swagger docs
	appControllers "github.com/upac/carnet-backend/internal/app/controllers"
	appMigrations "github.com/upac/carnet-backend/internal/app/migrations"
	appRepos "github.com/upac/carnet-backend/internal/app/repositories"
	appRoutes "github.com/upac/carnet-backend/internal/app/routes"
	appServices "github.com/upac/carnet-backend/internal/app/services"
	"github.com/upac/carnet-backend/internal/config"
	"github.com/upac/carnet-backend/internal/db"
	appMiddleware "github.com/upac/carnet-backend/internal/middleware"
	pkgAuth "github.com/upac/carnet-backend/internal/pkg/auth"
	"github.com/upac/carnet-backend/internal/pkg/helpers"
	"github.com/upac/carnet-backend/internal/pkg/logger"
	"github.com/upac/carnet-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CredentialService *appServices.CredentialService
	AuthService       *appServices.AuthService
	StudentService    *appServices.StudentService
	StaffService      *appServices.StaffService
	LoanService       *appServices.LoanService
	CardService       *appServices.CardService
	ExportService     *appServices.ExportService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	StaffController   *appControllers.StaffController
	LoanController    *appControllers.LoanController
	CardController    *appControllers.CardController
	ExportController  *appControllers.ExportController
	HealthController  *appControllers.HealthController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file, when present, feeds the environment before config resolution.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment")
	}

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

	// Seed the default staff account after migrations
	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		SessionExp:  helpers.ParseDuration(cfg.JWT.SessionExpiration, 168*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.CredentialService = appServices.NewCredentialService(
		deps.Repos.StudentRepository,
		deps.Repos.StaffRepository,
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.CredentialService,
		deps.Repos.SessionRepository,
		deps.JWTService,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.StaffService = appServices.NewStaffService(deps.Repos.StaffRepository, lgr)
	deps.LoanService = appServices.NewLoanService(deps.Repos.LoanRepository, deps.Repos.StudentRepository, lgr)
	deps.CardService = appServices.NewCardService(deps.Repos.StudentRepository, deps.Repos.LoanRepository, lgr)
	deps.ExportService = appServices.NewExportService(deps.Repos.StudentRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.SessionRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.CredentialService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.StaffController = appControllers.NewStaffController(deps.StaffService)
	deps.LoanController = appControllers.NewLoanController(deps.LoanService, deps.StaffService)
	deps.CardController = appControllers.NewCardController(deps.CardService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService)
	deps.HealthController = appControllers.NewHealthController(dbPool)

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

	router := gin.Default()

	// The portal frontend is served from a different origin in development.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.StaffController,
		deps.LoanController,
		deps.CardController,
		deps.ExportController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
