package catalog

import (
	"fmt"
	"log/slog"

	"github.com/propdesk/tenantpipe/internal/models"
)

// Catalog provides typed lookup over the template and form maps. Unknown
// keys surface as configuration errors, never panics.
type Catalog struct {
	templates map[models.StateType]models.TemplateEntry
	forms     map[string]models.FormDefinition
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{templates: templates, forms: forms}
}

// Template looks up the bilingual template entry for a state.
func (c *Catalog) Template(state models.StateType) (models.TemplateEntry, error) {
	entry, ok := c.templates[state]
	if !ok {
		slog.Error("Catalog.Template: no entry for state", "state", state)
		return models.TemplateEntry{}, fmt.Errorf("template for state %q: %w", state, models.ErrUnknownState)
	}
	return entry, nil
}

// Form looks up a form definition by name.
func (c *Catalog) Form(name string) (models.FormDefinition, error) {
	def, ok := c.forms[name]
	if !ok {
		slog.Error("Catalog.Form: no definition for form", "form", name)
		return models.FormDefinition{}, fmt.Errorf("form %q: %w", name, models.ErrUnknownForm)
	}
	if len(def.Slots) == 0 {
		return models.FormDefinition{}, fmt.Errorf("form %q: %w", name, models.ErrEmptyForm)
	}
	return def, nil
}

// FormNames lists the catalog's form names.
func (c *Catalog) FormNames() []string {
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	return names
}
