package hostapi

import (
	"path/filepath"
	"strings"
	"text/template"

	"go.trai.ch/zerr"
)

// defaultTemplateGlob is used when a plugin's init entry declares no
// overriding glob.
const defaultTemplateGlob = "templates/*"

// Templates implements the init-mode-only `template.render(name, data)`
// surface over text/template, discovering template files beneath the plugin
// root.
type Templates struct {
	root string
	glob string
}

// NewTemplates creates a renderer rooted at pluginRoot, discovering
// templates via glob (or defaultTemplateGlob if empty).
func NewTemplates(pluginRoot, glob string) *Templates {
	if glob == "" {
		glob = defaultTemplateGlob
	}
	return &Templates{root: pluginRoot, glob: glob}
}

// Render renders the template named name against data.
func (t *Templates) Render(name string, data any) (string, error) {
	pattern := filepath.Join(t.root, t.glob)
	tmpl, err := template.New(filepath.Base(name)).ParseGlob(pattern)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to discover templates"), "glob", pattern)
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to render template"), "name", name)
	}
	return buf.String(), nil
}
