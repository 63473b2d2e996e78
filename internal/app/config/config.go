package config

import (
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", ""),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", ""),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"https://*", "http://*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 60),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 5),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Intake: AppIntake{
			DraftStore:              utils.GetEnvString("INTAKE_DRAFT_STORE", constvars.DraftStoreMemory),
			DraftTTLInMinutes:       utils.GetEnvInt("INTAKE_DRAFT_TTL_IN_MINUTES", 120),
			SubmitLockTTLInSeconds:  utils.GetEnvInt("INTAKE_SUBMIT_LOCK_TTL_IN_SECONDS", 30),
			DraftSweeperCronSpec:    utils.GetEnvString("INTAKE_DRAFT_SWEEPER_CRON_SPEC", "@every 5m"),
			MaxDraftsPerMinutePerIP: utils.GetEnvInt("INTAKE_MAX_DRAFTS_PER_MINUTE_PER_IP", 10),
		},
		Captcha: AppCaptcha{
			SiteKey: utils.GetEnvString("CAPTCHA_SITE_KEY", ""),
		},
		Submission: AppSubmission{
			URL:                  utils.GetEnvString("SUBMISSION_URL", "http://localhost:9090/assessments"),
			TimeoutInSeconds:     utils.GetEnvInt("SUBMISSION_TIMEOUT_IN_SECONDS", 15),
			MaxRequestsPerSecond: utils.GetEnvFloat("SUBMISSION_MAX_REQUESTS_PER_SECOND", 5),
			Burst:                utils.GetEnvInt("SUBMISSION_BURST", 5),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "change-me"),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "assessments"),
		},
		RabbitMQ: AppRabbitMQ{
			SubmissionQueue: utils.GetEnvString("RABBITMQ_SUBMISSION_QUEUE", constvars.QueueEventAssessmentSubmitted),
		},
		MongoDB: AppMongoDB{
			HomecareDBName: utils.GetEnvString("MONGODB_DB_NAME", "homecare"),
		},
	}
}
