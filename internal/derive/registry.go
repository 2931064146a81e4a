package derive

import (
	"fmt"
	"slices"
)

// Registry maps family names to families.
type Registry struct {
	families map[string]*Family
}

// NewRegistry returns a registry holding families.
// Later families replace earlier ones with the same name.
func NewRegistry(families ...*Family) *Registry {
	r := &Registry{families: make(map[string]*Family, len(families))}
	for _, f := range families {
		r.families[f.Name] = f
	}
	return r
}

// Builtin returns a registry with the gem, lat, sla and acronym families.
func Builtin() *Registry {
	return NewRegistry(Germanic(), Latin(), Slavic(), Acronym())
}

// Register adds a family. A name already registered is an error.
func (r *Registry) Register(f *Family) error {
	if _, ok := r.families[f.Name]; ok {
		return fmt.Errorf("derivation family %q already registered", f.Name)
	}
	r.families[f.Name] = f
	return nil
}

// Lookup returns the family called name.
func (r *Registry) Lookup(name string) (*Family, bool) {
	f, ok := r.families[name]
	return f, ok
}

// Names returns the registered family names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Derive applies the named family to citation.
func (r *Registry) Derive(name, citation string) (string, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown derivation family %q", name)
	}
	return f.Derive(citation), nil
}
