package intake

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// SectionData is one nested section of a Submission Document.
type SectionData map[string]any

// SubmissionDocument is the nested, section-keyed form of a valid Draft.
type SubmissionDocument struct {
	Sections        map[SectionKey]SectionData
	AgreedToTerms   string
	AgreedToPrivacy string
}

// Payload flattens the document into its wire shape: one object per section plus the
// two consent siblings.
func (d *SubmissionDocument) Payload() map[string]any {
	out := make(map[string]any, len(d.Sections)+2)
	for key, section := range d.Sections {
		out[string(key)] = section
	}
	out[FieldAgreedToTerms] = d.AgreedToTerms
	out[FieldAgreedToPrivacy] = d.AgreedToPrivacy
	return out
}

func (d *SubmissionDocument) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Payload())
}

// FlagTag maps one boolean field to the tag it contributes when true.
type FlagTag struct {
	Field string
	Tag   string
}

// Derivation computes a composite value from one or more source fields. Source
// fields are consumed and do not appear in the section themselves.
type Derivation struct {
	Section SectionKey
	Key     string
	Sources []string
	Derive  func(values map[string]any) any
}

var caregiverStatusTags = []FlagTag{
	{Field: FieldCaregiverUnableToContinue, Tag: "unable"},
	{Field: FieldCaregiverNotSatisfied, Tag: "not_satisfied"},
	{Field: FieldCaregiverDistressed, Tag: "distressed"},
}

var helperAssistanceTags = []FlagTag{
	{Field: "helpEmotionalSupport", Tag: "emotional_support"},
	{Field: "helpIADL", Tag: "iadl"},
	{Field: "helpADL", Tag: "adl"},
}

var defaultDerivations = []Derivation{
	{
		Section: SectionIdentification,
		Key:     "fullName",
		Sources: []string{FieldFirstName, FieldLastName},
		Derive: func(values map[string]any) any {
			return stringValue(values, FieldFirstName) + " " + stringValue(values, FieldLastName)
		},
	},
	{
		Section: SectionIdentification,
		Key:     "dateOfBirth",
		Sources: []string{FieldBirthMonth, FieldBirthDay, FieldBirthYear},
		Derive: func(values map[string]any) any {
			return stringValue(values, FieldBirthMonth) + "/" +
				stringValue(values, FieldBirthDay) + "/" +
				stringValue(values, FieldBirthYear)
		},
	},
	flagSet(SectionInformalSupport, "caregiverStatus", caregiverStatusTags),
	flagSet(SectionInformalSupport, "helperAssistance", helperAssistanceTags),
}

func flagSet(section SectionKey, key string, tags []FlagTag) Derivation {
	sources := make([]string, len(tags))
	for i, t := range tags {
		sources[i] = t.Field
	}
	return Derivation{
		Section: section,
		Key:     key,
		Sources: sources,
		Derive:  func(values map[string]any) any { return FlagTags(values, tags) },
	}
}

// FlagTags returns one tag per true boolean, in declaration order.
func FlagTags(values map[string]any, tags []FlagTag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if b, _ := values[t.Field].(bool); b {
			out = append(out, t.Tag)
		}
	}
	return out
}

// LenientInt parses numeric-as-text input. Anything that does not parse as an
// integer, including an empty value, becomes 0. A typo in an hours field is
// submitted as zero hours and never blocks the form.
func LenientInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Transformer maps a valid Draft's values into a Submission Document.
type Transformer struct {
	catalog     *Catalog
	derivations []Derivation
	consumed    map[string]bool
}

func NewTransformer(catalog *Catalog) *Transformer {
	t := &Transformer{
		catalog:     catalog,
		derivations: defaultDerivations,
		consumed:    make(map[string]bool),
	}
	for _, d := range t.derivations {
		for _, source := range d.Sources {
			t.consumed[source] = true
		}
	}
	return t
}

// Transform must only be called with values the Validator marked valid; it does not
// re-check them.
func (t *Transformer) Transform(values map[string]any) *SubmissionDocument {
	doc := &SubmissionDocument{
		Sections:        make(map[SectionKey]SectionData, len(t.catalog.sections)),
		AgreedToTerms:   stringValue(values, FieldAgreedToTerms),
		AgreedToPrivacy: stringValue(values, FieldAgreedToPrivacy),
	}
	for _, section := range t.catalog.sections {
		doc.Sections[section.Key] = make(SectionData, len(section.Fields))
	}

	for _, field := range t.catalog.fields {
		if field.Section == SectionTopLevel || t.consumed[field.Key] {
			continue
		}
		doc.Sections[field.Section][field.Key] = fieldValue(field, values)
	}

	for _, d := range t.derivations {
		doc.Sections[d.Section][d.Key] = d.Derive(values)
	}
	return doc
}

func fieldValue(field Field, values map[string]any) any {
	value, ok := values[field.Key]
	if !ok || value == nil {
		value = EmptyValue(field.Kind)
	}
	switch field.Kind {
	case KindNumericText:
		s, _ := value.(string)
		return LenientInt(s)
	case KindMultiSelect:
		return copyValue(value)
	}
	return value
}

func stringValue(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}
