package intake

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformer_Transform(t *testing.T) {
	values := validValues()
	values[FieldCaregiverUnableToContinue] = true
	values[FieldCaregiverNotSatisfied] = false
	values[FieldCaregiverDistressed] = true
	values["helpADL"] = true
	values[FieldInformalHelpWeekdays] = "abc"
	values[FieldInformalHelpWeekends] = " 12 "
	values["stressors"] = []string{"loss_of_income"}
	values[FieldCaptchaToken] = "token-123"

	doc := NewTransformer(DefaultCatalog()).Transform(values)

	identification := doc.Sections[SectionIdentification]
	assert.Equal(t, "04/09/1940", identification["dateOfBirth"])
	assert.Equal(t, "Margaret Hale", identification["fullName"])
	assert.NotContains(t, identification, FieldFirstName, "source fields are consumed")
	assert.NotContains(t, identification, FieldBirthYear)
	assert.Equal(t, "503-555-0100", identification["phone"])

	support := doc.Sections[SectionInformalSupport]
	assert.Equal(t, []string{"unable", "distressed"}, support["caregiverStatus"])
	assert.Equal(t, []string{"adl"}, support["helperAssistance"])
	assert.Equal(t, 0, support[FieldInformalHelpWeekdays])
	assert.Equal(t, 12, support[FieldInformalHelpWeekends])
	assert.NotContains(t, support, FieldCaregiverDistressed)

	assert.Equal(t, []string{"loss_of_income"}, doc.Sections[SectionSocialFunctioning]["stressors"])
	assert.Equal(t, ConsentYes, doc.AgreedToTerms)
	assert.Equal(t, ConsentYes, doc.AgreedToPrivacy)

	for _, section := range doc.Sections {
		assert.NotContains(t, section, FieldHoneypot)
		assert.NotContains(t, section, FieldCaptchaToken)
		assert.NotContains(t, section, FieldAgreedToTerms)
	}
}

func TestTransformer_PayloadShape(t *testing.T) {
	doc := NewTransformer(DefaultCatalog()).Transform(validValues())

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	expected := []string{
		"identification", "personalIntake", "referralIntake", "assessmentMetadata",
		"cognition", "communicationHearing", "vision", "moodBehavior",
		"socialFunctioning", "informalSupport", "physicalFunctioning", "signature",
		FieldAgreedToTerms, FieldAgreedToPrivacy,
	}
	assert.Len(t, payload, len(expected))
	for _, key := range expected {
		assert.Contains(t, payload, key)
	}

	support := payload["informalSupport"].(map[string]any)
	assert.Equal(t, []any{}, support["caregiverStatus"], "no flags set yields an empty list, not null")
}

func TestLenientInt(t *testing.T) {
	tests := map[string]int{
		"":     0,
		"abc":  0,
		"7":    7,
		" 40 ": 40,
		"-3":   -3,
		"1.5":  0,
	}
	for raw, want := range tests {
		assert.Equal(t, want, LenientInt(raw), raw)
	}
}
