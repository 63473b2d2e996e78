package intake

// Field keys referenced outside the declaration table.
const (
	FieldFirstName                 = "firstName"
	FieldLastName                  = "lastName"
	FieldBirthMonth                = "birthMonth"
	FieldBirthDay                  = "birthDay"
	FieldBirthYear                 = "birthYear"
	FieldCaregiverUnableToContinue = "caregiverUnableToContinue"
	FieldCaregiverNotSatisfied     = "caregiverNotSatisfied"
	FieldCaregiverDistressed       = "caregiverDistressed"
	FieldInformalHelpWeekdays      = "informalHelpWeekdays"
	FieldInformalHelpWeekends      = "informalHelpWeekends"
	FieldAgreedToTerms             = "agreedToTerms"
	FieldAgreedToPrivacy           = "agreedToPrivacy"
	FieldHoneypot                  = "website"
	FieldCaptchaToken              = "captchaToken"
)

const (
	ConsentYes = "yes"
	ConsentNo  = "no"
)

var (
	codes0to1 = []string{"0", "1"}
	codes0to2 = []string{"0", "1", "2"}
	codes0to3 = []string{"0", "1", "2", "3"}
	codes0to4 = []string{"0", "1", "2", "3", "4"}
	codes0to5 = []string{"0", "1", "2", "3", "4", "5"}
	// ADL self-performance: 8 means the activity did not occur.
	adlCodes  = []string{"0", "1", "2", "3", "4", "5", "6", "8"}
	iadlCodes = []string{"0", "1", "2", "3", "4", "5", "6"}
	months    = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	days      = []string{
		"01", "02", "03", "04", "05", "06", "07", "08", "09", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
		"21", "22", "23", "24", "25", "26", "27", "28", "29", "30", "31",
	}
	consentCodes = []string{ConsentYes, ConsentNo}
)

func text(section SectionKey, key, label string, required bool, maxLen string, extra ...Rule) Field {
	rules := append([]Rule{{Kind: RuleLengthBound, Tag: "max=" + maxLen}}, extra...)
	return Field{Key: key, Label: label, Kind: KindText, Section: section, Required: required, Rules: rules}
}

func note(section SectionKey, key, label string) Field {
	return Field{
		Key: key, Label: label, Kind: KindBoundedText, Section: section,
		Rules: []Rule{{Kind: RuleLengthBound, Tag: "max=1000"}},
	}
}

func enum(section SectionKey, key, label string, required bool, options []string) Field {
	return Field{Key: key, Label: label, Kind: KindEnum, Section: section, Required: required, Options: options}
}

func flag(section SectionKey, key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindBoolean, Section: section}
}

func date(section SectionKey, key, label string, required bool) Field {
	return Field{
		Key: key, Label: label, Kind: KindDate, Section: section, Required: required,
		Rules: []Rule{{Kind: RulePattern, Tag: "datetime=2006-01-02"}},
	}
}

func hours(section SectionKey, key, label string) Field {
	return Field{
		Key: key, Label: label, Kind: KindNumericText, Section: section,
		Rules: []Rule{{Kind: RuleLengthBound, Tag: "max=3"}},
	}
}

func multi(section SectionKey, key, label string, required bool, options []string) Field {
	return Field{Key: key, Label: label, Kind: KindMultiSelect, Section: section, Required: required, Options: options}
}

var assessmentFields = []Field{
	// Identification
	text(SectionIdentification, FieldFirstName, "First name", true, "100"),
	text(SectionIdentification, FieldLastName, "Last name", true, "100"),
	enum(SectionIdentification, FieldBirthMonth, "Birth month", true, months),
	enum(SectionIdentification, FieldBirthDay, "Birth day", true, days),
	{
		Key: FieldBirthYear, Label: "Birth year", Kind: KindNumericText, Section: SectionIdentification, Required: true,
		Rules: []Rule{{Kind: RulePattern, Tag: "year"}},
	},
	enum(SectionIdentification, "gender", "Gender", true, []string{"1", "2"}),
	enum(SectionIdentification, "maritalStatus", "Marital status", true, []string{"1", "2", "3", "4", "5", "6"}),
	enum(SectionIdentification, "primaryLanguage", "Primary language", true, []string{"0", "1", "2"}),
	text(SectionIdentification, "primaryLanguageOther", "Other language", false, "100"),
	text(SectionIdentification, "phone", "Phone number", true, "20", Rule{Kind: RulePattern, Tag: "us_phone"}),
	text(SectionIdentification, "email", "Email", false, "254", Rule{Kind: RulePattern, Tag: "email"}),
	text(SectionIdentification, "streetAddress", "Street address", true, "200"),
	text(SectionIdentification, "city", "City", true, "100"),
	text(SectionIdentification, "state", "State", true, "2", Rule{Kind: RulePattern, Tag: "alpha"}),
	text(SectionIdentification, "zipCode", "ZIP code", true, "10", Rule{Kind: RulePattern, Tag: "us_zip"}),
	enum(SectionIdentification, "intakeType", "Who is completing this form", true, []string{"personal", "referral"}),

	// Personal intake only
	enum(SectionPersonalIntake, "relationshipToClient", "Relationship to client", false,
		[]string{"self", "spouse", "child", "other_family", "friend", "other"}),
	enum(SectionPersonalIntake, "contactPreference", "Preferred contact method", false, []string{"phone", "email", "text"}),
	enum(SectionPersonalIntake, "bestTimeToContact", "Best time to contact", false, []string{"morning", "afternoon", "evening"}),
	enum(SectionPersonalIntake, "howDidYouHear", "How did you hear about us", false,
		[]string{"search", "referral", "social", "advertisement", "other"}),
	enum(SectionPersonalIntake, "careStartTimeline", "When is care needed", false,
		[]string{"immediately", "within_week", "within_month", "exploring"}),

	// Referral intake only
	text(SectionReferralIntake, "referrerName", "Referrer name", false, "100"),
	text(SectionReferralIntake, "referrerOrganization", "Referrer organization", false, "200"),
	text(SectionReferralIntake, "referrerPhone", "Referrer phone", false, "20", Rule{Kind: RulePattern, Tag: "us_phone"}),
	text(SectionReferralIntake, "referrerEmail", "Referrer email", false, "254", Rule{Kind: RulePattern, Tag: "email"}),
	enum(SectionReferralIntake, "referralSource", "Referral source", false,
		[]string{"hospital", "physician", "social_worker", "case_manager", "other"}),
	note(SectionReferralIntake, "referralReason", "Reason for referral"),

	// Assessment metadata
	enum(SectionAssessmentMetadata, "assessmentReason", "Reason for assessment", true, []string{"1", "2", "3", "4", "5", "6"}),
	date(SectionAssessmentMetadata, "assessmentDate", "Assessment date", true),
	enum(SectionAssessmentMetadata, "livesWith", "Lives with", true, []string{"1", "2", "3", "4", "5", "6"}),
	flag(SectionAssessmentMetadata, "livingArrangementChanged", "Living arrangement changed in last 90 days"),
	note(SectionAssessmentMetadata, "primaryDiagnosis", "Primary diagnosis"),

	// Cognition
	enum(SectionCognition, "shortTermMemory", "Short-term memory", true, codes0to1),
	enum(SectionCognition, "proceduralMemory", "Procedural memory", true, codes0to1),
	enum(SectionCognition, "cognitiveSkills", "Cognitive skills for daily decision making", true, codes0to5),
	enum(SectionCognition, "suddenChangeInAwareness", "Sudden change in mental function", true, codes0to1),
	enum(SectionCognition, "easilyDistracted", "Easily distracted", false, codes0to2),
	enum(SectionCognition, "alteredPerception", "Periods of altered perception", false, codes0to2),
	enum(SectionCognition, "disorganizedSpeech", "Disorganized speech", false, codes0to2),
	enum(SectionCognition, "cognitiveDecline", "Decline in decision making", true, codes0to1),

	// Communication and hearing
	enum(SectionCommunicationHearing, "hearing", "Hearing", true, codes0to3),
	flag(SectionCommunicationHearing, "hearingAidUsed", "Uses hearing aid"),
	enum(SectionCommunicationHearing, "makingSelfUnderstood", "Making self understood", true, codes0to4),
	enum(SectionCommunicationHearing, "abilityToUnderstand", "Ability to understand others", true, codes0to4),
	enum(SectionCommunicationHearing, "communicationDecline", "Decline in communication", true, codes0to1),

	// Vision
	enum(SectionVision, "vision", "Vision", true, codes0to4),
	enum(SectionVision, "visualLimitation", "Visual limitation or difficulty", false, codes0to1),
	enum(SectionVision, "visionDecline", "Decline in vision", true, codes0to1),
	flag(SectionVision, "usesCorrectiveLenses", "Uses corrective lenses"),

	// Mood and behavior
	enum(SectionMoodBehavior, "feelingSad", "Feeling of sadness or being depressed", true, codes0to2),
	enum(SectionMoodBehavior, "persistentAnger", "Persistent anger with self or others", true, codes0to2),
	enum(SectionMoodBehavior, "unrealisticFears", "Expressions of unrealistic fears", true, codes0to2),
	enum(SectionMoodBehavior, "healthComplaints", "Repetitive health complaints", true, codes0to2),
	enum(SectionMoodBehavior, "anxiousComplaints", "Repetitive anxious complaints", true, codes0to2),
	enum(SectionMoodBehavior, "sadFacialExpressions", "Sad, pained, worried facial expressions", true, codes0to2),
	enum(SectionMoodBehavior, "recurrentCrying", "Recurrent crying, tearfulness", true, codes0to2),
	enum(SectionMoodBehavior, "withdrawal", "Withdrawal from activities of interest", true, codes0to2),
	enum(SectionMoodBehavior, "reducedSocialInteraction", "Reduced social interaction", true, codes0to2),
	enum(SectionMoodBehavior, "moodDecline", "Decline in mood", true, codes0to1),
	enum(SectionMoodBehavior, "behaviorWandering", "Wandering", true, codes0to2),
	enum(SectionMoodBehavior, "behaviorVerbalAbuse", "Verbally abusive", true, codes0to2),
	enum(SectionMoodBehavior, "behaviorPhysicalAbuse", "Physically abusive", true, codes0to2),
	enum(SectionMoodBehavior, "behaviorInappropriate", "Socially inappropriate or disruptive", true, codes0to2),
	enum(SectionMoodBehavior, "behaviorResistsCare", "Resists care", true, codes0to2),
	enum(SectionMoodBehavior, "behaviorChange", "Change in behavioral symptoms", true, codes0to1),

	// Social functioning
	enum(SectionSocialFunctioning, "socialActivityChange", "Change in social activities", true, codes0to2),
	enum(SectionSocialFunctioning, "timeAlone", "Length of time alone during the day", true, codes0to3),
	enum(SectionSocialFunctioning, "feelsLonely", "Says or indicates feeling lonely", true, codes0to1),
	multi(SectionSocialFunctioning, "stressors", "Major stressors in last 90 days", false,
		[]string{"death_of_close_family", "severe_illness", "loss_of_income", "fear_of_family", "other"}),
	note(SectionSocialFunctioning, "socialNotes", "Social functioning notes"),

	// Informal support
	text(SectionInformalSupport, "primaryHelperName", "Primary helper name", false, "100"),
	enum(SectionInformalSupport, "primaryHelperRelationship", "Primary helper relationship", true, []string{"1", "2", "3", "4"}),
	enum(SectionInformalSupport, "primaryHelperLivesWithClient", "Primary helper lives with client", true, []string{"0", "1", "2"}),
	flag(SectionInformalSupport, "helpEmotionalSupport", "Helper provides advice or emotional support"),
	flag(SectionInformalSupport, "helpIADL", "Helper provides IADL care"),
	flag(SectionInformalSupport, "helpADL", "Helper provides ADL care"),
	flag(SectionInformalSupport, FieldCaregiverUnableToContinue, "Caregiver unable to continue"),
	flag(SectionInformalSupport, FieldCaregiverNotSatisfied, "Caregiver not satisfied with support"),
	flag(SectionInformalSupport, FieldCaregiverDistressed, "Caregiver expresses distress"),
	hours(SectionInformalSupport, FieldInformalHelpWeekdays, "Hours of informal help on weekdays"),
	hours(SectionInformalSupport, FieldInformalHelpWeekends, "Hours of informal help on weekends"),

	// Physical functioning: IADL performance and difficulty
	enum(SectionPhysicalFunctioning, "mealPreparation", "Meal preparation", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "mealPreparationDifficulty", "Meal preparation difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "housework", "Ordinary housework", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "houseworkDifficulty", "Ordinary housework difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "managingFinance", "Managing finance", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "managingFinanceDifficulty", "Managing finance difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "managingMedications", "Managing medications", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "managingMedicationsDifficulty", "Managing medications difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "phoneUse", "Phone use", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "phoneUseDifficulty", "Phone use difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "shopping", "Shopping", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "shoppingDifficulty", "Shopping difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "transportation", "Transportation", true, iadlCodes),
	enum(SectionPhysicalFunctioning, "transportationDifficulty", "Transportation difficulty", true, codes0to2),
	enum(SectionPhysicalFunctioning, "bathing", "Bathing", true, adlCodes),
	enum(SectionPhysicalFunctioning, "dressing", "Dressing", true, adlCodes),
	enum(SectionPhysicalFunctioning, "eating", "Eating", true, adlCodes),
	enum(SectionPhysicalFunctioning, "toiletUse", "Toilet use", true, adlCodes),
	enum(SectionPhysicalFunctioning, "transferring", "Transferring", true, adlCodes),
	enum(SectionPhysicalFunctioning, "locomotionInHome", "Locomotion in home", true, adlCodes),
	enum(SectionPhysicalFunctioning, "adlDecline", "Decline in ADL status", true, codes0to1),

	// Signature
	text(SectionSignature, "signatureName", "Signature", true, "100"),
	date(SectionSignature, "signatureDate", "Date signed", true),
	enum(SectionSignature, "signerRelationship", "Signer relationship to client", true,
		[]string{"self", "family", "legal_representative", "professional"}),

	// Consents travel as siblings of the sections; honeypot and token never reach a section.
	enum(SectionTopLevel, FieldAgreedToTerms, "I agree to the Terms of Service", true, consentCodes),
	enum(SectionTopLevel, FieldAgreedToPrivacy, "I agree to the Privacy Policy", true, consentCodes),
	{Key: FieldHoneypot, Label: "Website", Kind: KindText, Hidden: true},
	{Key: FieldCaptchaToken, Label: "Challenge token", Kind: KindText, Hidden: true},
}
