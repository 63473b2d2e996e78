package constvars

const (
	URLParamPageSlug = "page_slug"
)

const (
	HeaderXDraftToken = "X-Draft-Token"
)
