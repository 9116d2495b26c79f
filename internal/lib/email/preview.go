package email

import "fmt"

// PreviewData contains sample template data for local preview.
//
//	PreviewData["verification"]["Link"] == "https://..."
var PreviewData = map[string]map[string]string{
	string(TemplateVerification): {
		"Link": "https://api-interna.onrender.com/verify-email?token=00000000-0000-4000-8000-000000000000&correo=cliente%40example.com",
	},
}

// RenderPreview renders a template with its PreviewData.
func RenderPreview(name string) (string, error) {
	data, ok := PreviewData[name]
	if !ok {
		return "", fmt.Errorf("no preview data for template %q", name)
	}
	return render(Template(name), data)
}
