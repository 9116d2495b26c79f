package email

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateVerification corresponds to templates/verification.html.
	TemplateVerification Template = "verification"
)
