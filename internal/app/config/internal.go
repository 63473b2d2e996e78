package config

type InternalConfig struct {
	App        App           `mapstructure:"app"`
	Intake     AppIntake     `mapstructure:"intake"`
	Captcha    AppCaptcha    `mapstructure:"captcha"`
	Submission AppSubmission `mapstructure:"submission"`
	JWT        AppJWT        `mapstructure:"jwt"`
	Minio      AppMinio      `mapstructure:"minio"`
	RabbitMQ   AppRabbitMQ   `mapstructure:"rabbitmq"`
	MongoDB    AppMongoDB    `mapstructure:"mongodb"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int      `mapstructure:"max_time_requests_per_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
}

type AppIntake struct {
	// DraftStore selects the draft repository, "memory" or "redis".
	DraftStore              string `mapstructure:"draft_store"`
	DraftTTLInMinutes       int    `mapstructure:"draft_ttl_in_minutes"`
	SubmitLockTTLInSeconds  int    `mapstructure:"submit_lock_ttl_in_seconds"`
	DraftSweeperCronSpec    string `mapstructure:"draft_sweeper_cron_spec"`
	MaxDraftsPerMinutePerIP int    `mapstructure:"max_drafts_per_minute_per_ip"`
}

// AppCaptcha is the challenge widget configuration. An empty SiteKey disables the widget
// and the token requirement.
type AppCaptcha struct {
	SiteKey string `mapstructure:"site_key"`
}

type AppSubmission struct {
	URL                  string  `mapstructure:"url"`
	TimeoutInSeconds     int     `mapstructure:"timeout_in_seconds"`
	MaxRequestsPerSecond float64 `mapstructure:"max_requests_per_second"`
	Burst                int     `mapstructure:"burst"`
}

type AppJWT struct {
	Secret string `mapstructure:"secret"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	SubmissionQueue string `mapstructure:"submission_queue"`
}

type AppMongoDB struct {
	HomecareDBName string `mapstructure:"homecare_db_name"`
}
