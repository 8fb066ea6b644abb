package scriptkit

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Names of the built-in templates in the template registry.
const (
	TemplateSQL  = "sql"
	TemplateJSON = "json"
)

var (
	templatesMu sync.RWMutex
	templates   = map[string]Template{
		TemplateSQL:  sqlTemplate,
		TemplateJSON: jsonTemplate,
	}
)

// RegisterTemplate adds or replaces a named template in the process-wide
// registry. The template is validated first. Names are case-insensitive.
func RegisterTemplate(name string, t Template) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("register template: name cannot be empty")
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("register template %s: %w", key, err)
	}

	templatesMu.Lock()
	defer templatesMu.Unlock()
	templates[key] = t
	return nil
}

// LookupTemplate returns the template registered under name.
func LookupTemplate(name string) (Template, bool) {
	templatesMu.RLock()
	defer templatesMu.RUnlock()
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// TemplateNames returns the registered template names, sorted.
func TemplateNames() []string {
	templatesMu.RLock()
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	templatesMu.RUnlock()

	slices.Sort(names)
	return names
}
