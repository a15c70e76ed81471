package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/campusadmit/internal/app/controllers"
	appMigrations "github.com/yigit/campusadmit/internal/app/migrations"
	appRepos "github.com/yigit/campusadmit/internal/app/repositories"
	appRoutes "github.com/yigit/campusadmit/internal/app/routes"
	appServices "github.com/yigit/campusadmit/internal/app/services"
	"github.com/yigit/campusadmit/internal/config"
	"github.com/yigit/campusadmit/internal/db"
	"github.com/yigit/campusadmit/internal/jobs"
	appMiddleware "github.com/yigit/campusadmit/internal/middleware"
	pkgAuth "github.com/yigit/campusadmit/internal/pkg/auth"
	"github.com/yigit/campusadmit/internal/pkg/email"
	"github.com/yigit/campusadmit/internal/pkg/logger"
	"github.com/yigit/campusadmit/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	UserService            appServices.UserService
	CourseService          *appServices.CourseService
	AdmissionService       *appServices.AdmissionService
	SimpleAdmissionService *appServices.SimpleAdmissionService
	ContactService         *appServices.ContactService
	DashboardService       *appServices.DashboardService
	AuthController         *appControllers.AuthController
	CourseController       *appControllers.CourseController
	AdmissionController    *appControllers.AdmissionController
	ContactController      *appControllers.ContactController
	UserController         *appControllers.UserController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	EmailService           email.EmailService
	JobManager             *jobs.Manager
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
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
// creates the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		admin := seed.Admin{
			Name:     cfg.Seed.AdminName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
			Phone:    cfg.Seed.AdminPhone,
		}
		users := appRepos.NewUserRepository(database.Pool)
		courses := appRepos.NewCourseRepository(database.Pool)
		if err := seed.CreateDefaultData(ctx, users, courses, admin, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenTTL(),
		RefreshTokenExp: cfg.RefreshTokenTTL(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, logger.Component("email"))

	numbers := appServices.NewApplicationNumberGenerator(cfg.Admissions.ApplicationNumberPrefix)
	seatAttempts := cfg.Admissions.SeatUpdateAttempts

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		logger.Component("auth"),
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		logger.Component("users"),
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.Transactor,
		seatAttempts,
		logger.Component("courses"),
	)
	deps.AdmissionService = appServices.NewAdmissionService(
		deps.Repos.AdmissionRepository,
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
		deps.Repos.Transactor,
		numbers,
		deps.EmailService,
		seatAttempts,
		logger.Component("admissions"),
	)
	deps.SimpleAdmissionService = appServices.NewSimpleAdmissionService(
		deps.Repos.SimpleAdmissionRepository,
		deps.Repos.SequenceRepository,
		numbers,
		logger.Component("simple_admissions"),
	)
	deps.ContactService = appServices.NewContactService(
		deps.Repos.ContactRepository,
		deps.EmailService,
		logger.Component("contacts"),
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.AdmissionRepository,
		deps.Repos.SimpleAdmissionRepository,
		deps.Repos.ContactRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.AdmissionController = appControllers.NewAdmissionController(deps.AdmissionService, deps.SimpleAdmissionService)
	deps.ContactController = appControllers.NewContactController(deps.ContactService)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.DashboardService, deps.Logger)

	if cfg.Jobs.Enabled {
		deps.JobManager = jobs.NewManager(
			jobs.Schedules{
				TokenPurge: cfg.Jobs.TokenPurgeSchedule,
				SeatAudit:  cfg.Jobs.SeatAuditSchedule,
			},
			deps.Repos.TokenRepository,
			deps.Repos.CourseRepository,
			logger.Component("jobs"),
		)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, database *db.PostgresDB, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.AdmissionController,
		deps.ContactController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	})

	return router
}
