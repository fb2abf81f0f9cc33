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
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trivix-payroll.backend/internal/config"
	"trivix-payroll.backend/internal/infrastructure/blockchain"
	"trivix-payroll.backend/internal/infrastructure/jobs"
	"trivix-payroll.backend/internal/infrastructure/metrics"
	"trivix-payroll.backend/internal/infrastructure/payrollapi"
	"trivix-payroll.backend/internal/infrastructure/repositories"
	"trivix-payroll.backend/internal/interfaces/http/handlers"
	"trivix-payroll.backend/internal/interfaces/http/middleware"
	"trivix-payroll.backend/internal/usecases"
	"trivix-payroll.backend/pkg/jwt"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/redis"
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
			PrepareStmt: false,
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
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	businessRepo := repositories.NewBusinessRepository(db)
	scheduleRepo := repositories.NewPayrollScheduleRepository(db)
	payeeRepo := repositories.NewPayeeRepository(db)
	recordRepo := repositories.NewPaymentRecordRepository(db)
	historyRepo := repositories.NewPaymentHistoryRepository(db)
	mailRepo := repositories.NewMailRepository(db)
	uow := repositories.NewUnitOfWork(db)

	payrollMetrics := metrics.New()

	// Outbound adapters
	clientFactory := blockchain.NewClientFactory()
	submitter := blockchain.NewPoolSubmitter(
		clientFactory,
		cfg.Blockchain.RPCURL,
		cfg.Blockchain.EmployerPrivateKey,
		cfg.Blockchain.WaitForReceipt,
		cfg.Blockchain.ReceiptTimeout,
	)
	payrollAPI := payrollapi.NewClient(
		cfg.PayrollAPI.BaseURL,
		cfg.PayrollAPI.Timeout,
		cfg.PayrollAPI.RequestsPerSecond,
		cfg.PayrollAPI.Burst,
	)

	// Usecases
	mails := usecases.NewMailBuilder(cfg.Mail.ProductName, cfg.Mail.DashboardURL)
	dispatcher := usecases.NewMailQueueDispatcher(mailRepo, nil)
	notifier := usecases.NewPayrollNotifier(dispatcher, mails)
	store := usecases.NewPaymentRecordStore(uow, recordRepo, historyRepo, payeeRepo, nil)
	orchestrator := usecases.NewPayrollOrchestrator(store, submitter, payeeRepo, businessRepo, notifier, nil, usecases.OrchestratorConfig{
		PoolContractAddress: cfg.Blockchain.PoolContractAddress,
		ChainID:             cfg.Blockchain.ChainID,
		TokenSymbol:         cfg.Blockchain.TokenSymbol,
		TokenDecimals:       cfg.Blockchain.TokenDecimals,
		ApprovalTimeout:     cfg.Blockchain.ApprovalTimeout,
	}).WithMetrics(payrollMetrics)
	sweepUsecase := usecases.NewPayrollSweepUsecase(
		uow, businessRepo, scheduleRepo, payeeRepo, store, payrollAPI, notifier, usecases.RedisLocker, nil,
		usecases.SweepConfig{TokenSymbol: cfg.Blockchain.TokenSymbol, LockTTL: cfg.Sweep.LockTTL},
	).WithMetrics(payrollMetrics)
	payeeUsecase := usecases.NewPayeeUsecase(payeeRepo, businessRepo, dispatcher, mails, cfg.Mail.DashboardURL, nil)
	settingsUsecase := usecases.NewPayrollSettingsUsecase(uow, businessRepo, scheduleRepo, nil)
	historyUsecase := usecases.NewHistoryUsecase(historyRepo, nil)

	// Background jobs
	jobCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	staleJob := jobs.NewStalePaymentMonitorJob(store, payrollMetrics, usecases.DefaultStalePendingAge)
	go staleJob.Start(jobCtx)

	var sweepJob *jobs.PayrollSweepJob
	if cfg.Sweep.Enabled {
		sweepJob = jobs.NewPayrollSweepJob(sweepUsecase, cfg.Sweep.Interval)
		go sweepJob.Start(jobCtx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(healthPath, metricsPath))
	r.Use(middleware.MetricsMiddleware(payrollMetrics))

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET(metricsPath, gin.WrapH(payrollMetrics.Handler()))
	registerAPIV1Routes(r, routeDeps{
		payrollHandler:  handlers.NewPayrollHandler(orchestrator, store),
		payeeHandler:    handlers.NewPayeeHandler(payeeUsecase),
		scheduleHandler: handlers.NewScheduleHandler(settingsUsecase),
		historyHandler:  handlers.NewHistoryHandler(historyUsecase),
		authMiddleware:  middleware.AuthMiddleware(jwtService),
	})
	registerInternalRoutes(r, handlers.NewSweepHandler(sweepUsecase), middleware.InternalTokenMiddleware(cfg.Server.InternalToken))

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		staleJob.Stop()
		if sweepJob != nil {
			sweepJob.Stop()
		}
		cancel()
	}()

	logger.Info(ctx, "Trivix payroll backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int64("chain_id", cfg.Blockchain.ChainID),
		zap.Bool("sweep_enabled", cfg.Sweep.Enabled),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
