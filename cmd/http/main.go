package main

import (
	"context"
	"fmt"
	"homecare-service/internal/app/config"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/app/delivery/http/controllers"
	"homecare-service/internal/app/delivery/http/middlewares"
	"homecare-service/internal/app/delivery/http/routers"
	"homecare-service/internal/app/drivers/database"
	"homecare-service/internal/app/drivers/logger"
	"homecare-service/internal/app/drivers/messaging"
	"homecare-service/internal/app/drivers/storage"
	"homecare-service/internal/app/services/core/intakes"
	"homecare-service/internal/app/services/core/pages"
	"homecare-service/internal/app/services/shared/archive"
	"homecare-service/internal/app/services/shared/drafts"
	"homecare-service/internal/app/services/shared/jwtmanager"
	"homecare-service/internal/app/services/shared/locker"
	"homecare-service/internal/app/services/shared/notifier"
	redisRepository "homecare-service/internal/app/services/shared/redis"
	"homecare-service/internal/app/services/shared/submission"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/intake"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	accessLogger := logger.NewLogrusLogger(internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if internalConfig.Intake.DraftStore == constvars.DraftStoreRedis {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.MongoDB.Enabled() {
		bootstrap.Mongo = database.NewMongoDB(driverConfig)
		bootstrap.MongoDB = bootstrap.Mongo.Database(internalConfig.MongoDB.HomecareDBName)
	}
	if driverConfig.RabbitMQ.Enabled() {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if driverConfig.Minio.Enabled() {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	}

	if err := bootstrapingTheApp(bootstrap, accessLogger); err != nil {
		zapLogger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	accessLogger.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error while releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, accessLogger *logrus.Logger) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Intake core
	catalog := intake.DefaultCatalog()
	gate := intake.NewGate(intake.GateConfig{SiteKey: internalConfig.Captcha.SiteKey})
	validator := intake.NewValidator(catalog)
	draftTTL := time.Duration(internalConfig.Intake.DraftTTLInMinutes) * time.Minute

	// Draft storage
	var draftRepository contracts.DraftRepository
	var lockerService contracts.LockerService
	if bootstrap.Redis != nil {
		redisRepo := redisRepository.NewRedisRepository(bootstrap.Redis)
		draftRepository = drafts.NewRedisRepository(redisRepo, validator, gate, draftTTL, log)
		lockerService = locker.NewLockService(redisRepo, log)
	} else {
		memoryRepository := drafts.NewMemoryRepository(draftTTL)
		sweeper := drafts.NewSweeper(log, memoryRepository, internalConfig.Intake.DraftSweeperCronSpec)
		sweeper.Start(context.Background())
		bootstrap.WorkerStop = sweeper.Stop
		draftRepository = memoryRepository
	}

	// Draft sessions
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig.JWT.Secret, draftTTL, log)
	if err != nil {
		return err
	}

	// Submission
	var limiter *rate.Limiter
	if internalConfig.Submission.MaxRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(internalConfig.Submission.MaxRequestsPerSecond), internalConfig.Submission.Burst)
	}
	submissionClient := submission.NewSubmissionClient(
		internalConfig.Submission.URL,
		time.Duration(internalConfig.Submission.TimeoutInSeconds)*time.Second,
		limiter,
		log,
	)

	var submissionNotifier contracts.SubmissionNotifier
	if bootstrap.RabbitMQ != nil {
		channel := messaging.DeclareQueue(bootstrap.RabbitMQ, internalConfig.RabbitMQ.SubmissionQueue)
		submissionNotifier = notifier.NewNotifierService(channel, internalConfig.RabbitMQ.SubmissionQueue, log)
	}

	var submissionArchive contracts.SubmissionArchive
	if bootstrap.Minio != nil {
		submissionArchive = archive.NewMinioArchive(bootstrap.Minio, internalConfig.Minio.BucketName, log)
	}

	intakeUsecase := intakes.NewIntakeUsecase(
		catalog,
		gate,
		draftRepository,
		submissionClient,
		jwtManager,
		lockerService,
		submissionNotifier,
		submissionArchive,
		internalConfig,
		log,
	)

	// Pages
	pageRepositories := []contracts.PageMetadataRepository{}
	if bootstrap.MongoDB != nil {
		pageRepositories = append(pageRepositories, pages.NewPageMetadataMongoRepository(bootstrap.MongoDB))
	}
	pageRepositories = append(pageRepositories, pages.NewStaticPageMetadataRepository())
	pageUsecase := pages.NewPageUsecase(log, pageRepositories...)

	// Delivery
	middlewareInstance := middlewares.NewMiddlewares(log, intakeUsecase, internalConfig)
	intakeController := controllers.NewIntakeController(log, intakeUsecase, internalConfig)
	pageController := controllers.NewPageController(log, pageUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		accessLogger,
		middlewareInstance,
		intakeController,
		pageController,
	)
	return nil
}
