package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_DRAFT_ID_KEY             ContextKey = "draft_id"
)

const (
	REQUEST_ID_PREFIX = "HMCR_SVC_"
)

const (
	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
)

const (
	RedisKeyDraftPrefix      = "intake:draft:"
	RedisKeySubmitLockPrefix = "intake:submit:"
)

const (
	QueueEventAssessmentSubmitted = "assessment.submitted"
	ArchiveObjectPathFormat       = "assessments/%s/%s.json"
	MongoCollectionPageMetadata   = "page_metadata"
)
