package utils

import (
	"homecare-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var pageSlugRegex = regexp.MustCompile(constvars.RegexPageSlug)

func init() {
	validate = validator.New()
	validate.RegisterValidation("page_slug", validatePageSlug)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePageSlug(fl validator.FieldLevel) bool {
	return pageSlugRegex.MatchString(fl.Field().String())
}
