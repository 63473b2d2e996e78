package intake

import (
	"errors"
	"fmt"
	"homecare-service/internal/pkg/constvars"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorMap maps a field key to the first message produced for it.
type ErrorMap map[string]string

// Result is the verdict for one Draft.
type Result struct {
	Errors ErrorMap
	Valid  bool
}

// Refinement is a named rule over more than one field (or over the Draft as a whole).
// A failing refinement reports against Field. An empty Message reports Field's own
// required message.
type Refinement struct {
	Name    string
	Field   string
	Message string
	Check   func(values map[string]any) bool
}

var defaultRefinements = []Refinement{
	{
		Name:    "consent_terms_must_equal_yes",
		Field:   FieldAgreedToTerms,
		Message: constvars.ErrClientMustAgreeToTerms,
		Check:   consentGiven(FieldAgreedToTerms),
	},
	{
		Name:    "consent_privacy_must_equal_yes",
		Field:   FieldAgreedToPrivacy,
		Message: constvars.ErrClientMustAgreeToPrivacy,
		Check:   consentGiven(FieldAgreedToPrivacy),
	},
	{
		// Reported like any other missing value so automated clients learn nothing.
		Name:  "honeypot_must_be_empty",
		Field: FieldHoneypot,
		Check: func(values map[string]any) bool { return !HoneypotTripped(values) },
	},
	{
		Name:    "birth_date_must_exist",
		Field:   FieldBirthDay,
		Message: constvars.ErrClientBirthDateDoesNotExist,
		Check:   birthDateExists,
	},
}

func consentGiven(key string) func(map[string]any) bool {
	return func(values map[string]any) bool {
		s, _ := values[key].(string)
		return s == ConsentYes
	}
}

// birthDateExists rejects dates such as 02/31. Parts that do not parse are left to
// their own field rules.
func birthDateExists(values map[string]any) bool {
	month, errMonth := strconv.Atoi(strings.TrimSpace(stringValue(values, FieldBirthMonth)))
	day, errDay := strconv.Atoi(strings.TrimSpace(stringValue(values, FieldBirthDay)))
	year, errYear := strconv.Atoi(strings.TrimSpace(stringValue(values, FieldBirthYear)))
	if errMonth != nil || errDay != nil || errYear != nil {
		return true
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Month() == time.Month(month) && date.Day() == day
}

var (
	usPhoneRegex = regexp.MustCompile(constvars.RegexUSPhoneNumber)
	usZipRegex   = regexp.MustCompile(constvars.RegexUSZipCode)
	yearRegex    = regexp.MustCompile(constvars.RegexFourDigitYear)
)

// Validator evaluates a catalog against Draft values. It is pure and safe for
// concurrent use.
type Validator struct {
	catalog  *Catalog
	validate *validator.Validate
}

func NewValidator(catalog *Catalog) *Validator {
	validate := validator.New()
	validate.RegisterValidation("us_phone", matches(usPhoneRegex))
	validate.RegisterValidation("us_zip", matches(usZipRegex))
	validate.RegisterValidation("year", matches(yearRegex))
	return &Validator{catalog: catalog, validate: validate}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Catalog returns the catalog the validator evaluates.
func (v *Validator) Catalog() *Catalog {
	return v.catalog
}

// Validate runs every field's rules in declaration order, then the refinements.
// Missing keys are treated as the field's empty value.
func (v *Validator) Validate(values map[string]any) Result {
	errs := make(ErrorMap)

	for _, field := range v.catalog.fields {
		value, ok := values[field.Key]
		if !ok || value == nil {
			value = EmptyValue(field.Kind)
		}
		if msg, failed := v.validateField(field, value); failed {
			errs[field.Key] = msg
		}
	}

	for _, refinement := range v.catalog.refinements {
		if refinement.Check(values) {
			continue
		}
		if _, exists := errs[refinement.Field]; exists {
			continue
		}
		message := refinement.Message
		if message == "" {
			field, _ := v.catalog.Field(refinement.Field)
			message = formatMessage(field, "required", "")
		}
		errs[refinement.Field] = message
	}

	return Result{Errors: errs, Valid: len(errs) == 0}
}

// ValidateField evaluates a single field's own rules, ignoring refinements.
func (v *Validator) ValidateField(key string, value any) (string, bool) {
	field, ok := v.catalog.Field(key)
	if !ok {
		return constvars.ErrClientUnknownField, true
	}
	if value == nil {
		value = EmptyValue(field.Kind)
	}
	return v.validateField(field, value)
}

func (v *Validator) validateField(field Field, value any) (string, bool) {
	if !kindAccepts(field.Kind, value) {
		return formatMessage(field, "", ""), true
	}
	if isEmpty(value) {
		if field.Required {
			return formatMessage(field, "required", ""), true
		}
		return "", false
	}

	for _, rule := range field.Rules {
		err := v.validate.Var(value, rule.Tag)
		if err == nil {
			continue
		}
		if rule.Kind == RuleRequired {
			return formatMessage(field, "required", ""), true
		}
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return formatMessage(field, fieldErrors[0].Tag(), fieldErrors[0].Param()), true
		}
		return formatMessage(field, "", ""), true
	}
	return "", false
}

func formatMessage(field Field, tag, param string) string {
	message, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		message = constvars.ErrClientFieldInvalid
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		message = strings.Replace(message, "%s", param, 1)
	}
	return fmt.Sprintf("%s %s", field.Label, message)
}

func kindAccepts(kind FieldKind, value any) bool {
	switch kind {
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindMultiSelect:
		_, ok := value.([]string)
		return ok
	default:
		_, ok := value.(string)
		return ok
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case bool:
		return !v
	}
	return value == nil
}
