package constvars

const (
	RegexFourDigitYear = `^(19|20)\d{2}$`
	// RegexUSPhoneNumber accepts 10 digits with optional +1 prefix and common separators.
	RegexUSPhoneNumber = `^(\+?1[ .-]?)?\(?[2-9]\d{2}\)?[ .-]?\d{3}[ .-]?\d{4}$`
	RegexUSZipCode     = `^\d{5}(-\d{4})?$`
	RegexPageSlug      = `^[a-z0-9]+(-[a-z0-9]+)*$`
)
