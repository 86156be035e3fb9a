// Package views renders the console pages from embedded html/template files.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/pkg/ptr"
)

//go:embed templates
var templatesFS embed.FS

const (
	AuthView = "auth"
	baseName = "base"
)

// Renderer executes a named view into a buffer before writing it, so a
// template failure never leaves a half written page.
type Renderer struct {
	views map[string]*template.Template
}

func New(cfg config.Console) (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": func(t model.Timestamp) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format(cfg.TimeFormat)
		},
		"count": func(v *int) int {
			return ptr.ValueOr(v, 0)
		},
		"orDash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
	}

	r := &Renderer{views: make(map[string]*template.Template)}

	auth, err := template.New(AuthView).Funcs(funcs).ParseFS(templatesFS,
		"templates/base.html",
		"templates/auth.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse auth view: %w", err)
	}
	r.views[AuthView] = auth

	pages, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}
	for _, p := range pages {
		name := strings.TrimSuffix(path.Base(p), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/base.html",
			"templates/shell.html",
			p,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s view: %w", name, err)
		}
		r.views[name] = t
	}

	return r, nil
}

// Has reports whether a view with the given name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.views[name]
	return ok
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, baseName, data); err != nil {
		return fmt.Errorf("execute %s view: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
