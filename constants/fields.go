package constants

// ExtractMethod identifies which OCR backend produced a fragment list.
type ExtractMethod string

const (
	MethodTesseract ExtractMethod = "tesseract"
	MethodVision    ExtractMethod = "vision"
)

// CardColumns is the stored column set, in schema order. card_holder is the
// row key for edit and delete.
var CardColumns = []string{
	"company_name",
	"card_holder",
	"designation",
	"mobile_number",
	"email",
	"website",
	"area",
	"city",
	"state",
	"pin_code",
}

// CardColumnLabels maps column names to the labels used in exports and forms.
var CardColumnLabels = map[string]string{
	"company_name":  "Company name",
	"card_holder":   "Cardholder",
	"designation":   "Designation",
	"mobile_number": "Mobile number",
	"email":         "Email",
	"website":       "Website",
	"area":          "Area",
	"city":          "City",
	"state":         "State",
	"pin_code":      "Pincode",
}
