// Package templates holds the layout catalog and mediates template choice
// against subscription entitlement.
package templates

import (
	"embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed html/*.html
var templateFiles embed.FS

// Template is a layout/style descriptor. Documents reference templates by ID
// and never own them.
type Template struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPremium bool   `json:"isPremium"`
	// HTML is the layout body consumed by the preview renderer. Not
	// serialized; clients fetch it through the catalog endpoint.
	HTML string `json:"-"`
}

var (
	catalogOnce sync.Once
	catalog     map[string]Template
)

// catalogSpec maps template IDs to display names and premium flags. The HTML
// body for each lives in html/<id>.html.
var catalogSpec = []Template{
	{ID: "classic", Name: "Classic"},
	{ID: "compact", Name: "Compact"},
	{ID: "modern", Name: "Modern", IsPremium: true},
	{ID: "executive", Name: "Executive", IsPremium: true},
}

func loadCatalog() {
	catalog = make(map[string]Template, len(catalogSpec))
	for _, t := range catalogSpec {
		body, err := templateFiles.ReadFile("html/" + t.ID + ".html")
		if err != nil {
			panic(fmt.Sprintf("template %s missing embedded HTML: %v", t.ID, err))
		}
		t.HTML = string(body)
		catalog[t.ID] = t
	}
}

// All returns every template in the catalog, ordered by ID.
func All() []Template {
	catalogOnce.Do(loadCatalog)
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the template with the given ID, or an error if the catalog has
// no such template.
func Get(id string) (Template, error) {
	catalogOnce.Do(loadCatalog)
	t, ok := catalog[id]
	if !ok {
		return Template{}, fmt.Errorf("unknown template: %s", id)
	}
	return t, nil
}
