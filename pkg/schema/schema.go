// Package schema holds the field alias registry: the fixed set of canonical
// fields, their display labels, and every surface label accepted for them.
//
// A registry is loaded once from a line-oriented config file and is read-only
// afterwards, so one instance can be shared by every component of a run.
//
//	tube-number: Tube Number, Tube No, Tube #
//	first-name: First Name, Given Name
//	last-name: Last Name, Surname
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
)

// Field is one canonical field definition.
type Field struct {
	Key     string   `json:"key" yaml:"key"`         // canonical key, e.g. "tube-number"
	Label   string   `json:"label" yaml:"label"`     // display label, e.g. "Tube Number"
	Aliases []string `json:"aliases" yaml:"aliases"` // additional surface labels
}

// Registry is the immutable field alias map plus its derived lookup.
type Registry struct {
	fields  []Field
	byKey   map[string]int    // key -> field position
	byLabel map[string]int    // display label -> field position
	lookup  map[string]string // surface label -> display label
}

// RequiredKeys are the identity-critical fields every schema must define.
var RequiredKeys = []string{
	constants.KeyOrderID,
	constants.KeyFirstName,
	constants.KeyLastName,
}

// New builds a registry from field definitions, validating the label
// invariants and that every required key is present.
func New(fields []Field) (*Registry, error) {
	r := newRegistry(len(fields))
	for _, f := range fields {
		if err := r.add(f); err != nil {
			return nil, err
		}
	}
	if err := r.checkRequired(); err != nil {
		return nil, err
	}
	return r, nil
}

func newRegistry(n int) *Registry {
	return &Registry{
		fields:  make([]Field, 0, n),
		byKey:   make(map[string]int, n),
		byLabel: make(map[string]int, n),
		lookup:  make(map[string]string),
	}
}

// checkRequired ensures the identity-critical keys are defined.
func (r *Registry) checkRequired() error {
	for _, key := range RequiredKeys {
		if _, ok := r.byKey[key]; !ok {
			return errors.NewConfigFormatError(0, "", fmt.Sprintf("required field %s is not defined", key))
		}
	}
	return nil
}

// add registers one field and its aliases.
func (r *Registry) add(f Field) error {
	if f.Key == "" {
		return errors.NewConfigFormatError(0, "", "field key is empty")
	}
	if f.Label == "" {
		return errors.NewConfigFormatError(0, "", fmt.Sprintf("field %s has no display label", f.Key))
	}
	if _, dup := r.byKey[f.Key]; dup {
		return errors.NewConfigFormatError(0, "", fmt.Sprintf("field %s is defined twice", f.Key))
	}
	if _, dup := r.byLabel[f.Label]; dup {
		return errors.NewConfigFormatError(0, "", fmt.Sprintf("display label %q is used by more than one field", f.Label))
	}

	seen := map[string]bool{f.Label: true}
	for _, alias := range f.Aliases {
		if seen[alias] {
			return errors.NewConfigFormatError(0, "", fmt.Sprintf("label %q appears twice in field %s", alias, f.Key))
		}
		seen[alias] = true
	}
	for label := range seen {
		if owner, taken := r.lookup[label]; taken {
			return errors.NewConfigFormatError(0, "", fmt.Sprintf("label %q already maps to %q", label, owner))
		}
	}

	pos := len(r.fields)
	r.fields = append(r.fields, Field{Key: f.Key, Label: f.Label, Aliases: slices.Clone(f.Aliases)})
	r.byKey[f.Key] = pos
	r.byLabel[f.Label] = pos
	for label := range seen {
		r.lookup[label] = f.Label
	}
	return nil
}

// Len returns the number of canonical fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// Fields returns the field definitions in declared order.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	for i, f := range r.fields {
		out[i] = Field{Key: f.Key, Label: f.Label, Aliases: slices.Clone(f.Aliases)}
	}
	return out
}

// Labels returns the display labels in declared order.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Label
	}
	return out
}

// Label returns the display label for a canonical key.
func (r *Registry) Label(key string) (string, bool) {
	pos, ok := r.byKey[key]
	if !ok {
		return "", false
	}
	return r.fields[pos].Label, true
}

// Index returns the record position of a canonical key, or -1.
func (r *Registry) Index(key string) int {
	if pos, ok := r.byKey[key]; ok {
		return pos
	}
	return -1
}

// LabelIndex returns the record position of a display label, or -1.
func (r *Registry) LabelIndex(label string) int {
	if pos, ok := r.byLabel[label]; ok {
		return pos
	}
	return -1
}

// Resolve maps a surface label to its display label. Surrounding whitespace
// on the surface label is ignored; matching is otherwise exact.
func (r *Registry) Resolve(surface string) (string, bool) {
	label, ok := r.lookup[strings.TrimSpace(surface)]
	return label, ok
}

// Lookup returns a copy of the alias lookup. Every display label maps to
// itself in addition to its aliases.
func (r *Registry) Lookup() map[string]string {
	out := make(map[string]string, len(r.lookup))
	for k, v := range r.lookup {
		out[k] = v
	}
	return out
}

// OrderID returns the record position of the order identifier.
func (r *Registry) OrderID() int {
	return r.byKey[constants.KeyOrderID]
}

// FirstName returns the record position of the first name.
func (r *Registry) FirstName() int {
	return r.byKey[constants.KeyFirstName]
}

// LastName returns the record position of the last name.
func (r *Registry) LastName() int {
	return r.byKey[constants.KeyLastName]
}
