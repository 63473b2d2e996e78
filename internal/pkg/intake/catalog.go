package intake

// FieldKind is the semantic type of a Draft field.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindBoundedText FieldKind = "bounded_text"
	KindEnum        FieldKind = "enum"
	KindMultiSelect FieldKind = "multi_select"
	KindBoolean     FieldKind = "boolean"
	KindDate        FieldKind = "date"
	KindNumericText FieldKind = "numeric_text"
)

// RuleKind names the category of a Field Rule.
type RuleKind string

const (
	RuleRequired    RuleKind = "required"
	RuleEnum        RuleKind = "enum"
	RulePattern     RuleKind = "pattern"
	RuleLengthBound RuleKind = "length_bound"
)

// SectionKey identifies one group of the Section Grouping.
type SectionKey string

const (
	SectionIdentification       SectionKey = "identification"
	SectionPersonalIntake       SectionKey = "personalIntake"
	SectionReferralIntake       SectionKey = "referralIntake"
	SectionAssessmentMetadata   SectionKey = "assessmentMetadata"
	SectionCognition            SectionKey = "cognition"
	SectionCommunicationHearing SectionKey = "communicationHearing"
	SectionVision               SectionKey = "vision"
	SectionMoodBehavior         SectionKey = "moodBehavior"
	SectionSocialFunctioning    SectionKey = "socialFunctioning"
	SectionInformalSupport      SectionKey = "informalSupport"
	SectionPhysicalFunctioning  SectionKey = "physicalFunctioning"
	SectionSignature            SectionKey = "signature"

	// SectionTopLevel marks fields sent as siblings of the sections (consents) or not
	// sent at all (honeypot, challenge token).
	SectionTopLevel SectionKey = ""
)

// Rule is a declarative constraint bound to one field. Tag is a go-playground
// validator tag evaluated against the field value.
type Rule struct {
	Kind RuleKind `json:"kind"`
	Tag  string   `json:"tag"`
}

// Field describes one Draft field.
type Field struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Kind     FieldKind  `json:"kind"`
	Section  SectionKey `json:"section,omitempty"`
	Required bool       `json:"required"`
	Options  []string   `json:"options,omitempty"`
	Hidden   bool       `json:"-"`
	Rules    []Rule     `json:"rules,omitempty"`
}

// Section is one ordered group of field keys.
type Section struct {
	Key    SectionKey `json:"key"`
	Title  string     `json:"title"`
	Fields []string   `json:"fields"`
}

// Catalog is the immutable Field Rule Catalog.
type Catalog struct {
	fields      []Field
	byKey       map[string]int
	sections    []Section
	refinements []Refinement
}

var sectionOrder = []Section{
	{Key: SectionIdentification, Title: "Identification"},
	{Key: SectionPersonalIntake, Title: "Personal Intake"},
	{Key: SectionReferralIntake, Title: "Referral Intake"},
	{Key: SectionAssessmentMetadata, Title: "Assessment Information"},
	{Key: SectionCognition, Title: "Cognitive Patterns"},
	{Key: SectionCommunicationHearing, Title: "Communication and Hearing"},
	{Key: SectionVision, Title: "Vision"},
	{Key: SectionMoodBehavior, Title: "Mood and Behavior"},
	{Key: SectionSocialFunctioning, Title: "Social Functioning"},
	{Key: SectionInformalSupport, Title: "Informal Support Services"},
	{Key: SectionPhysicalFunctioning, Title: "Physical Functioning"},
	{Key: SectionSignature, Title: "Signature"},
}

// NewCatalog builds a catalog from field declarations. Required fields get a leading
// required rule and enumerations get a trailing oneof rule, so declarations only
// carry the extra rules.
func NewCatalog(fields []Field, refinements []Refinement) *Catalog {
	c := &Catalog{
		fields:      make([]Field, 0, len(fields)),
		byKey:       make(map[string]int, len(fields)),
		refinements: append([]Refinement(nil), refinements...),
	}

	sectionIndex := make(map[SectionKey]int, len(sectionOrder))
	for i, s := range sectionOrder {
		c.sections = append(c.sections, Section{Key: s.Key, Title: s.Title})
		sectionIndex[s.Key] = i
	}

	for _, f := range fields {
		var rules []Rule
		if f.Required {
			rules = append(rules, requiredRule(f.Kind))
		}
		rules = append(rules, f.Rules...)
		if len(f.Options) > 0 {
			rules = append(rules, Rule{Kind: RuleEnum, Tag: oneOfTag(f.Kind, f.Options)})
		}
		f.Rules = rules
		f.Options = append([]string(nil), f.Options...)

		c.byKey[f.Key] = len(c.fields)
		c.fields = append(c.fields, f)

		if f.Section != SectionTopLevel {
			i := sectionIndex[f.Section]
			c.sections[i].Fields = append(c.sections[i].Fields, f.Key)
		}
	}
	return c
}

// DefaultCatalog returns the intake assessment catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

var defaultCatalog = NewCatalog(assessmentFields, defaultRefinements)

// Keys returns every field key in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.fields))
	for i, f := range c.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of every field declaration in order.
func (c *Catalog) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Field returns the declaration for key.
func (c *Catalog) Field(key string) (Field, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// RulesFor returns the rules of a field in evaluation order.
func (c *Catalog) RulesFor(key string) []Rule {
	f, ok := c.Field(key)
	if !ok {
		return nil
	}
	return append([]Rule(nil), f.Rules...)
}

// Sections returns the ordered Section Grouping.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = Section{Key: s.Key, Title: s.Title, Fields: append([]string(nil), s.Fields...)}
	}
	return out
}

// Refinements returns the cross-field refinements in evaluation order.
func (c *Catalog) Refinements() []Refinement {
	return append([]Refinement(nil), c.refinements...)
}

// EmptyValue is the type-appropriate empty default for a field kind.
func EmptyValue(kind FieldKind) any {
	switch kind {
	case KindBoolean:
		return false
	case KindMultiSelect:
		return []string{}
	default:
		return ""
	}
}

func requiredRule(kind FieldKind) Rule {
	if kind == KindMultiSelect {
		return Rule{Kind: RuleRequired, Tag: "min=1"}
	}
	return Rule{Kind: RuleRequired, Tag: "required"}
}

func oneOfTag(kind FieldKind, options []string) string {
	tag := "oneof="
	for i, o := range options {
		if i > 0 {
			tag += " "
		}
		tag += o
	}
	if kind == KindMultiSelect {
		return "dive," + tag
	}
	return tag
}
