package filter

import (
	"net/url"
	"sort"
	"strings"
)

// Set represents the optional field constraints narrowing a list query.
// A key that is absent (or was set to a blank value) means "no constraint"; blank values are never
// stored, so they can never be sent as a literal empty match.
type Set map[string]string

// New creates a new filter set out of key-value pairs, dropping blank values
func New(pairs map[string]string) Set {
	set := Set{}
	for key, value := range pairs {
		set = set.With(key, value)
	}
	return set
}

// With returns a copy of the set with the given constraint applied.
// A blank value removes the constraint.
func (set Set) With(key, value string) Set {
	cpy := set.Clone()
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return cpy
	}
	if value == "" {
		delete(cpy, key)
		return cpy
	}
	cpy[key] = value
	return cpy
}

// Get returns the value of a constraint and whether it is set
func (set Set) Get(key string) (string, bool) {
	value, ok := set[key]
	return value, ok && value != ""
}

// Clone returns an independent copy of the set
func (set Set) Clone() Set {
	cpy := make(Set, len(set))
	for key, value := range set {
		if value == "" {
			continue
		}
		cpy[key] = value
	}
	return cpy
}

// Keys returns the constrained keys in lexical order
func (set Set) Keys() []string {
	keys := make([]string, 0, len(set))
	for key, value := range set {
		if value != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Empty returns whether the set has no constraints
func (set Set) Empty() bool {
	return len(set.Keys()) == 0
}

// Equal returns whether both sets carry the same constraints
func (set Set) Equal(other Set) bool {
	keys := set.Keys()
	if len(keys) != len(other.Keys()) {
		return false
	}
	for _, key := range keys {
		value, ok := other.Get(key)
		if !ok || value != set[key] {
			return false
		}
	}
	return true
}

// Encode writes every constraint into the given query values
func (set Set) Encode(values url.Values) {
	for _, key := range set.Keys() {
		values.Set(key, set[key])
	}
}

// Body returns the constraints as a JSON-ready search body
func (set Set) Body() map[string]any {
	body := make(map[string]any, len(set))
	for _, key := range set.Keys() {
		body[key] = set[key]
	}
	return body
}

// FromQuery extracts the parameters known to the schema out of the given query values
func FromQuery(values url.Values, schema Schema) Set {
	set := Set{}
	for _, param := range schema.Params() {
		set = set.With(param, values.Get(param))
	}
	return set
}
