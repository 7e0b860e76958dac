package message

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates renders the embedded e-mail bodies by name, e.g.
// "contact-us-email".  Values are HTML-escaped.
type Templates struct {
	set *template.Template
}

// LoadTemplates parses every embedded template once.
func LoadTemplates() (*Templates, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes template name with data.
func (t *Templates) Render(name string, data any) (string, error) {
	tpl := t.set.Lookup(name + ".html")
	if tpl == nil {
		return "", fmt.Errorf("mail template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
