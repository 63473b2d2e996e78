package requests

type FindPageMetadata struct {
	Slug string `validate:"required,page_slug"`
}
