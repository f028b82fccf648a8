package elements

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"page_automation/domain/entities"
)

// Registry is a label-keyed lookup of a page's controls. An element with
// localizations is stored once per alias, every alias mapping to the same
// instance.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Control
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Control)}
}

// Put stores c under each of its localizations, or under its label
func (r *Registry) Put(c Control) error {
	if c == nil {
		return fmt.Errorf("%w: cannot register a nil element", entities.ErrNotFound)
	}

	h := c.Core()
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.HasLocalizations() {
		r.putLocalized(c)
		return nil
	}

	label, err := h.Label()
	if err != nil {
		return fmt.Errorf("cannot register element without a key -> %s : %w", h, err)
	}
	r.entries[label] = c
	return nil
}

// PutAs stores c under key, and under each of its localizations
func (r *Registry) PutAs(key string, c Control) error {
	if c == nil {
		return fmt.Errorf("%w: cannot register a nil element under %q", entities.ErrNotFound, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Core().HasLocalizations() {
		r.putLocalized(c)
	}
	r.entries[key] = c
	return nil
}

func (r *Registry) putLocalized(c Control) {
	for _, alias := range c.Core().Localizations() {
		r.entries[alias] = c
	}
}

func (r *Registry) get(label string) (Control, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.entries[label]
	return c, ok
}

// Find returns the control stored under label.
//
// With identifiers, they replace the control's template identifiers. Without,
// a localized control is pointed at the alias it was found under, and an
// alias it does not carry is an ErrLocalizationMismatch.
func (r *Registry) Find(label string, identifiers ...string) (Control, error) {
	c, ok := r.get(label)
	if !ok {
		return nil, fmt.Errorf("%w: the registry does not contain an element with the label : %s", entities.ErrNotFound, label)
	}
	if err := prepare(c, label, identifiers); err != nil {
		return nil, err
	}
	return c, nil
}

// FindKind is Find restricted to controls of the given family
func (r *Registry) FindKind(kind Kind, label string, identifiers ...string) (Control, error) {
	c, ok := r.get(label)
	if !ok || c.Kind() != kind {
		return nil, fmt.Errorf("%w: the registry does not contain an element with the type : %s and the label : %s",
			entities.ErrNotFound, kind, label)
	}
	if err := prepare(c, label, identifiers); err != nil {
		return nil, err
	}
	return c, nil
}

// FindAs is Find restricted to controls of type T
func FindAs[T Control](r *Registry, label string, identifiers ...string) (T, error) {
	var zero T
	c, ok := r.get(label)
	if !ok {
		return zero, fmt.Errorf("%w: the registry does not contain an element with the type : %s and the label : %s",
			entities.ErrNotFound, typeName[T](), label)
	}
	typed, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: the registry does not contain an element with the type : %s and the label : %s",
			entities.ErrNotFound, typeName[T](), label)
	}
	if err := prepare(c, label, identifiers); err != nil {
		return zero, err
	}
	return typed, nil
}

func prepare(c Control, label string, identifiers []string) error {
	h := c.Core()
	if len(identifiers) > 0 {
		h.SetTemplateIdentifiers(identifiers...)
		return nil
	}
	if !h.HasLocalizations() {
		return nil
	}
	if !h.IsLocalization(label) {
		return fmt.Errorf("%w: the key %q is not a localization of -> %s", entities.ErrLocalizationMismatch, label, h)
	}
	h.SetTemplateIdentifier(label)
	return nil
}

// ElementsOf returns every entry of type T, one per key, ordered by key
func ElementsOf[T Control](r *Registry) []T {
	var found []T
	for _, key := range r.Keys() {
		c, _ := r.get(key)
		if typed, ok := c.(T); ok {
			found = append(found, typed)
		}
	}
	return found
}

// ByKind returns every entry of the given family, one per key, ordered by key
func (r *Registry) ByKind(kind Kind) []Control {
	var found []Control
	for _, key := range r.Keys() {
		if c, _ := r.get(key); c.Kind() == kind {
			found = append(found, c)
		}
	}
	return found
}

// Keys returns the registered keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Size counts keys, so a localized element counts once per alias
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) String() string {
	var sb strings.Builder
	sb.WriteString("Registry [\n")
	for _, key := range r.Keys() {
		c, _ := r.get(key)
		fmt.Fprintf(&sb, "  %s = %s\n", key, c)
	}
	sb.WriteString("]")
	return sb.String()
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
