package enums

const (
	CREDIT_TYPE_TEXT    = "text"
	CREDIT_TYPE_IMAGE   = "image"
	CREDIT_TYPE_SPEECH  = "speech"
	CREDIT_TYPE_WEBSITE = "website"
)

var CreditTypes = []string{
	CREDIT_TYPE_TEXT,
	CREDIT_TYPE_IMAGE,
	CREDIT_TYPE_SPEECH,
	CREDIT_TYPE_WEBSITE,
}

const (
	CREDIT_KIND_GRANT  = "grant"
	CREDIT_KIND_SPEND  = "spend"
	CREDIT_KIND_REFUND = "refund"
)
