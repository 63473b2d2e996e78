package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Intake messages
	GetIntakeSchemaSuccessMessage    = "get intake schema successfully"
	CreateIntakeDraftSuccessMessage  = "intake form session started"
	GetIntakeDraftSuccessMessage     = "get intake form successfully"
	UpdateIntakeDraftSuccessMessage  = "intake form updated"
	DiscardIntakeDraftSuccessMessage = "intake form session ended"
	SubmitIntakeDraftSuccessMessage  = "thank you, your assessment has been submitted"
	GetPageMetadataSuccessMessage    = "get page metadata successfully"
)
