package catalog

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Registry stores templates keyed by id and name with a secondary subtype
// index. It is populated once and read-only afterwards; lookups that miss
// return the error sentinel instead of failing, so callers can always render
// something while the anomaly is logged.
type Registry struct {
	byID      map[string]*Template
	byName    map[string]*Template
	bySubtype map[Subtype][]*Template

	missMu sync.Mutex
	missed map[string]bool
}

// NewRegistry builds a registry from the provided templates and validates the
// transform graph: every non-terminal template must point at an existing
// template of the complementary kind.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{
		byID:      make(map[string]*Template, len(templates)),
		byName:    make(map[string]*Template, len(templates)),
		bySubtype: make(map[Subtype][]*Template),
		missed:    make(map[string]bool),
	}
	for i := range templates {
		t := templates[i]
		if t.ID == "" || t.Name == "" {
			return nil, fmt.Errorf("template %d: missing id or name", i)
		}
		if t.Name == ErrorTemplateName {
			return nil, errors.New("catalog: template name \"error\" is reserved")
		}
		if t.Kind != KindInventory && t.Kind != KindPlaced {
			return nil, fmt.Errorf("template %s: unknown type %q", t.ID, t.Kind)
		}
		if !validSubtype(t.Kind, t.Subtype) {
			return nil, fmt.Errorf("template %s: subtype %q not valid for %s", t.ID, t.Subtype, t.Kind)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("template %s: duplicate id", t.ID)
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, fmt.Errorf("template %s: duplicate name %q", t.ID, t.Name)
		}
		r.byID[t.ID] = &t
		r.byName[t.Name] = &t
		r.bySubtype[t.Subtype] = append(r.bySubtype[t.Subtype], &t)
	}
	if err := r.validateTransforms(); err != nil {
		return nil, err
	}
	return r, nil
}

func validSubtype(kind Kind, st Subtype) bool {
	switch st {
	case SubtypeSeed, SubtypeBlueprint, SubtypeHarvested:
		return kind == KindInventory
	case SubtypePlant, SubtypeDecoration, SubtypeEmpty:
		return kind == KindPlaced
	case SubtypeEgg:
		return true
	}
	return false
}

func (r *Registry) validateTransforms() error {
	for _, t := range r.byID {
		if t.IsTerminal() {
			if t.TransformID != "" {
				return fmt.Errorf("template %s: terminal subtype %s must not declare a transform", t.ID, t.Subtype)
			}
			continue
		}
		target, ok := r.byID[t.TransformID]
		if !ok {
			return fmt.Errorf("template %s: transform %q not in catalog", t.ID, t.TransformID)
		}
		if target.Kind == t.Kind {
			return fmt.Errorf("template %s: transform %s must cross to the opposite side", t.ID, t.TransformID)
		}
	}
	return nil
}

// ByID resolves a template id. Unknown ids resolve to the error sentinel and
// are logged once per id.
func (r *Registry) ByID(id string) *Template {
	if t, ok := r.byID[id]; ok {
		return t
	}
	r.logMiss("id", id)
	return ErrorTemplate()
}

// ByName resolves a template display name. Unknown names resolve to the error
// sentinel and are logged once per name.
func (r *Registry) ByName(name string) *Template {
	if t, ok := r.byName[name]; ok {
		return t
	}
	r.logMiss("name", name)
	return ErrorTemplate()
}

// Contains reports whether the id resolves without touching the miss log.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// TransformOf follows a template's transform link across the
// inventory/placed boundary. Terminals and sentinels have no transform and
// resolve to the error sentinel.
func (r *Registry) TransformOf(t *Template) *Template {
	if t.IsError() || t.IsTerminal() || t.TransformID == "" {
		return ErrorTemplate()
	}
	return r.ByID(t.TransformID)
}

// BySubtype returns all templates of a subtype sorted by name. The slice is a
// copy; the registry stays immutable.
func (r *Registry) BySubtype(st Subtype) []*Template {
	src := r.bySubtype[st]
	out := make([]*Template, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCategory returns all templates in a category sorted by name.
func (r *Registry) ByCategory(category string) []*Template {
	var out []*Template
	for _, t := range r.byID {
		if t.Category == category {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of templates in the catalog.
func (r *Registry) Count() int {
	return len(r.byID)
}

func (r *Registry) logMiss(by, key string) {
	r.missMu.Lock()
	defer r.missMu.Unlock()
	mapKey := by + ":" + key
	if r.missed[mapKey] {
		return
	}
	r.missed[mapKey] = true
	log.Printf("catalog: no template with %s %q, serving error sentinel", by, key)
}
