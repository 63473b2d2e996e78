package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDraftIDKey        = "draft_id"
	LoggingFieldCountKey     = "field_count"
	LoggingErrorCountKey     = "error_count"
	LoggingDraftStatusKey    = "draft_status"
	LoggingSubmissionIDKey   = "submission_id"
	LoggingFailureKindKey    = "failure_kind"
	LoggingStatusCodeKey     = "status_code"
	LoggingPageSlugKey       = "page_slug"
	LoggingRedisKey          = "redis_key"
	LoggingQueueKey          = "queue"
	LoggingBucketKey         = "bucket"
	LoggingObjectKey         = "object"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingSweptCountKey     = "swept_count"
)
