// Package handler holds the template renderer and response helpers shared by
// the storefront and admin handlers.
package handler

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// Renderer manages parsed template sets, one per page, each cloned from its
// section layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the storefront and admin templates under templatesDir.
// Storefront pages live at the root next to layout.html; admin pages live
// under admin/ next to admin/layout.html.
func NewRenderer(templatesDir string) (*Renderer, error) {
	templates := make(map[string]*template.Template)

	baseTmpl, err := template.New("base").Funcs(TemplateFuncs()).
		ParseFiles(filepath.Join(templatesDir, "layout.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	adminBaseTmpl, err := template.New("admin_base").Funcs(TemplateFuncs()).
		ParseFiles(filepath.Join(templatesDir, "admin", "layout.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin layout: %w", err)
	}

	if err := parsePages(templates, baseTmpl, filepath.Join(templatesDir, "*.html"), ""); err != nil {
		return nil, err
	}
	if err := parsePages(templates, adminBaseTmpl, filepath.Join(templatesDir, "admin", "*.html"), "admin/"); err != nil {
		return nil, err
	}

	return &Renderer{templates: templates}, nil
}

func parsePages(templates map[string]*template.Template, base *template.Template, pattern, keyPrefix string) error {
	pages, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}

	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}

		pageTmpl, err := base.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone template for %s: %w", page, err)
		}
		pageTmpl, err = pageTmpl.ParseFiles(page)
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		name := filepath.Base(page)
		name = name[:len(name)-len(filepath.Ext(name))]
		templates[keyPrefix+name] = pageTmpl
	}
	return nil
}

// Render executes a named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	execName := "base"
	if strings.HasPrefix(name, "admin/") {
		execName = "admin_base"
	}
	return tmpl.ExecuteTemplate(w, execName, data)
}

// RenderHTTP renders to an http.ResponseWriter with error handling.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.Render(w, name, data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}
