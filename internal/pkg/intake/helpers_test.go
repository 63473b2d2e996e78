package intake

// validValues returns a complete, valid set of values for the default catalog.
func validValues() map[string]any {
	values := make(map[string]any)
	for _, f := range DefaultCatalog().Fields() {
		if f.Required && len(f.Options) > 0 {
			values[f.Key] = f.Options[0]
		}
	}
	overrides := map[string]any{
		FieldFirstName:       "Margaret",
		FieldLastName:        "Hale",
		FieldBirthMonth:      "04",
		FieldBirthDay:        "09",
		FieldBirthYear:       "1940",
		"phone":              "503-555-0100",
		"streetAddress":      "12 Alder St",
		"city":               "Portland",
		"state":              "OR",
		"zipCode":            "97201",
		"intakeType":         "personal",
		"assessmentDate":     "2024-05-01",
		"signatureName":      "Margaret Hale",
		"signatureDate":      "2024-05-01",
		FieldAgreedToTerms:   ConsentYes,
		FieldAgreedToPrivacy: ConsentYes,
	}
	for k, v := range overrides {
		values[k] = v
	}
	return values
}

func newTestDraft(siteKey string) *Draft {
	catalog := DefaultCatalog()
	return NewDraft("draft-1", NewValidator(catalog), NewGate(GateConfig{SiteKey: siteKey}))
}
