package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must contain at least %s item(s)",
	"max":      "must be at most %s characters long",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"email":    "must be a valid email",
	"alpha":    "must contain only letters",
	"numeric":  "must be a number",
	"datetime": "must be a valid date (YYYY-MM-DD)",
	"us_phone": "must be a valid phone number",
	"us_zip":   "must be a valid ZIP code",
	"year":     "must be a four-digit year",
	"uuid":     "must be a valid UUID",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientBirthDateDoesNotExist         = "Birth day does not exist in the selected month and year"
	ErrClientFieldInvalid                  = "is invalid"
	ErrClientUnknownField                  = "This field is not part of the form"
	ErrClientMustAgreeToTerms              = "You must agree to the Terms of Service"
	ErrClientMustAgreeToPrivacy            = "You must agree to the Privacy Policy"
	ErrClientCaptchaRequired               = "Please complete the verification challenge"
	ErrClientFormHasErrors                 = "please correct the highlighted fields"
	ErrClientDraftNotFound                 = "your form session has expired, please start again"
	ErrClientDraftSessionInvalid           = "your form session is not valid, please start again"
	ErrClientDraftNotEditable              = "the form can not be changed while it is being submitted"
	ErrClientSubmissionInFlight            = "your assessment is already being submitted"
	ErrClientSubmissionFailed              = "we could not submit your assessment, please try again"
	ErrClientPageNotFound                  = "page not found"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevMissingRequestID          = "request id missing from context"
	ErrDevCannotParseJSON           = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON         = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed          = "validation failed"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevServerProcess             = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded    = "deadline exceeded"
	ErrDevRateLimited               = "rate limit exceeded"
	ErrDevUnknownField              = "field %s is not in the intake catalog"
	ErrDevDraftNotFound             = "draft %s not found"
	ErrDevDraftNotEditable          = "draft %s is not idle"
	ErrDevDraftDiscarded            = "draft %s was discarded"
	ErrDevDraftInvalid              = "draft %s failed validation"
	ErrDevCaptchaMissing            = "challenge token missing for draft %s"
	ErrDevSubmissionInFlight        = "submission already in flight for draft %s"
	ErrDevSubmissionRejected        = "persistence endpoint rejected submission (%s)"
	ErrDevDraftSessionMissing       = "draft session token missing"
	ErrDevDraftSessionInvalid       = "draft session token invalid or expired"
	ErrDevDraftSessionSign          = "failed to sign draft session token"
	ErrDevPageMetadataNotFound      = "page metadata for slug %s not found"
	ErrDevDBFailedToFindDocument    = "failed when do find document on database"
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
	ErrDevRedisSetData              = "failed to SET data into redis"
	ErrDevRedisGetData              = "failed to GET data from redis"
	ErrDevRedisDeleteData           = "failed to DELETE data from redis"
	ErrDevRedisUnlock               = "failed to release lock in redis"
	ErrDevRabbitMQPublishMessage    = "failed to publish message into queue %s"
)
