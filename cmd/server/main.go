package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wash-loop.backend/internal/config"
	"wash-loop.backend/internal/infrastructure/models"
	"wash-loop.backend/internal/infrastructure/repositories"
	"wash-loop.backend/internal/interfaces/http/handlers"
	"wash-loop.backend/internal/interfaces/http/middleware"
	"wash-loop.backend/internal/usecases"
	"wash-loop.backend/pkg/logger"
	"wash-loop.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else if err := db.AutoMigrate(
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.LoyaltyPoint{},
		&models.Referral{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(db)
	pointRepo := repositories.NewLoyaltyPointRepository(db)
	referralRepo := repositories.NewReferralRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	walletUsecase := usecases.NewWalletUsecase(walletRepo, uow)
	loyaltyUsecase := usecases.NewLoyaltyUsecase(pointRepo, walletRepo, walletUsecase, uow, cfg.Rewards.RedemptionRate)
	referralUsecase := usecases.NewReferralUsecase(
		referralRepo,
		walletUsecase,
		loyaltyUsecase,
		uow,
		cfg.Rewards.ReferrerBonus,
		cfg.Rewards.ReferredBonus,
		cfg.Rewards.PointsExpiryDays,
	)

	// Initialize handlers
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyUsecase)
	referralHandler := handlers.NewReferralHandler(referralUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		walletHandler:   walletHandler,
		loyaltyHandler:  loyaltyHandler,
		referralHandler: referralHandler,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
	}()

	log.Printf("WashLoop rewards backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
