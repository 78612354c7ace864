package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/handler"
	"github.com/wysanalytics/takwimu-plus/internal/config"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/pgmq"
	"github.com/wysanalytics/takwimu-plus/internal/ratelimit"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// New wires the whole service: DB pool, queue, external clients, repositories,
// services and handlers, returning the root HTTP handler.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening DB connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, nil, fmt.Errorf("pinging DB: %w", err)
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// S3 client for product photos; nil when no endpoint is configured.
	var s3Client *s3.Client
	if cfg.S3URL != "" {
		s3Config, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
			awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("loading S3 config: %w", err)
		}
		s3Client = s3.NewFromConfig(s3Config, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		})
	} else {
		logger.Warn().Msg("S3_URL not set, product photos disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	queue := pgmq.New(db)
	if err := queue.EnsureQueue(context.Background(), cfg.SMSQueueName); err != nil {
		return nil, nil, fmt.Errorf("ensuring SMS queue: %w", err)
	}

	monthlyPrice, err := decimal.NewFromString(cfg.MonthlyPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing MONTHLY_PRICE: %w", err)
	}

	userRepo := repository.NewUserRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	activityRepo := repository.NewActivityLogRepo(db)
	reportRepo := repository.NewReportRepo(db)

	notifier := service.NewNotifier(queue, cfg.SMSQueueName, logger)
	barcodeClient := service.NewBarcodeClient(cfg.BarcodeFoodBaseURL, cfg.BarcodeCatalogBaseURL,
		time.Duration(cfg.BarcodeTimeoutSec)*time.Second, logger)
	limiter := ratelimit.New(cfg.BarcodeRateLimit, time.Duration(cfg.BarcodeRateWindowSec)*time.Second)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword,
		cfg.AdminSecretKey, cfg.TrialDays, logger)
	settingsSvc := service.NewSettingsService(settingsRepo, logger)
	productSvc := service.NewProductService(productRepo, s3Client, cfg.S3Bucket, logger)
	barcodeSvc := service.NewBarcodeService(barcodeClient, limiter, logger)
	saleSvc := service.NewSaleService(saleRepo, logger)
	expenseSvc := service.NewExpenseService(expenseRepo, logger)
	reportSvc := service.NewReportService(reportRepo, productRepo, userRepo, settingsSvc, logger)
	paymentSvc := service.NewPaymentService(paymentRepo, userRepo, activityRepo, notifier,
		monthlyPrice, cfg.SubscriptionDays, logger)
	messageSvc := service.NewMessageService(messageRepo, userRepo, activityRepo, notifier, logger)
	adminSvc := service.NewAdminService(userRepo, paymentRepo, messageRepo, reportRepo,
		activityRepo, notifier, cfg.SubscriptionDays, logger)

	authHandler := handler.NewAuthHandler(authSvc, validate)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, validate)
	productHandler := handler.NewProductHandler(productSvc, barcodeSvc, validate)
	saleHandler := handler.NewSaleHandler(saleSvc, validate)
	expenseHandler := handler.NewExpenseHandler(expenseSvc, validate)
	reportHandler := handler.NewReportHandler(reportSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, validate)
	messageHandler := handler.NewMessageHandler(messageSvc, validate)
	adminHandler := handler.NewAdminHandler(adminSvc, paymentSvc, messageSvc, validate)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	adminMiddleware := middleware.AdminMiddleware(cfg.JWTSecret)

	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	settingsHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	productHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	saleHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	expenseHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	reportHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	paymentHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	messageHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	adminHandler.RegisterRoutes(apiV1Mux, adminMiddleware)

	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
