// Package nav holds the page registry of the console shell and computes the
// sidebar for a page and role.
package nav

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

const DefaultPage = "dashboard"

//go:embed pages.yml
var pagesYAML []byte

type Page struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	NavID     string `yaml:"nav_id"`
	Label     string `yaml:"label"`
	Icon      string `yaml:"icon"`
	AdminOnly bool   `yaml:"admin_only"`
}

// Entry is one rendered sidebar link.
type Entry struct {
	Page
	Active bool
}

type Registry struct {
	pages []Page
	byID  map[string]Page
}

// Default returns the registry of the built-in pages.
func Default() *Registry {
	r, err := Parse(pagesYAML)
	if err != nil {
		panic(fmt.Errorf("parse embedded pages: %w", err))
	}
	return r
}

// Parse builds a registry from a YAML page list. Ids and nav ids must be unique.
func Parse(data []byte) (*Registry, error) {
	var doc struct {
		Pages []Page `yaml:"pages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal pages: %w", err)
	}

	r := &Registry{
		pages: doc.Pages,
		byID:  make(map[string]Page, len(doc.Pages)),
	}
	navIDs := make(map[string]struct{}, len(doc.Pages))
	for _, p := range doc.Pages {
		if p.ID == "" || p.NavID == "" {
			return nil, fmt.Errorf("page %q: id and nav_id are required", p.ID)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate page id %q", p.ID)
		}
		if _, dup := navIDs[p.NavID]; dup {
			return nil, fmt.Errorf("duplicate nav id %q", p.NavID)
		}
		r.byID[p.ID] = p
		navIDs[p.NavID] = struct{}{}
	}

	return r, nil
}

// Lookup returns the page registered under id.
func (r *Registry) Lookup(id string) (Page, error) {
	p, ok := r.byID[id]
	if !ok {
		return Page{}, apperr.PageNotFoundErr.WithMsg(fmt.Sprintf("page not found: %s", id))
	}
	return p, nil
}

// Navigation returns the sidebar entries visible to role. The entry of
// pageID is the only active one; admin-only entries are listed for admins
// only.
func (r *Registry) Navigation(pageID string, role model.Role) []Entry {
	active := ""
	if p, ok := r.byID[pageID]; ok {
		active = p.NavID
	}

	entries := make([]Entry, 0, len(r.pages))
	for _, p := range r.pages {
		if !p.Accessible(role) {
			continue
		}
		entries = append(entries, Entry{Page: p, Active: p.NavID == active})
	}
	return entries
}

// Accessible reports whether role may open the page.
func (p Page) Accessible(role model.Role) bool {
	return !p.AdminOnly || role == model.RoleAdmin
}
