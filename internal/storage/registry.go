package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/3cstudio/contentforge/internal/errors"
)

// Registry is a small user-extensible list of normalized strings, persisted
// on every mutation. Theme labels and audience segments are both registries;
// absence or corruption of the stored data falls back to the built-in
// defaults rather than failing.
type Registry struct {
	kv       KV
	key      string
	name     string
	defaults []string
	entries  []string
}

// NewLabelRegistry returns the theme-label registry.
func NewLabelRegistry(kv KV) *Registry {
	return newRegistry(kv, KeyLabels, "Label",
		[]string{"news", "promotion", "educational", "community", "inspiration"})
}

// NewAudienceRegistry returns the audience-segment registry.
func NewAudienceRegistry(kv KV) *Registry {
	return newRegistry(kv, KeyAudiences, "Audience",
		[]string{"general", "business", "creative", "technical", "youth"})
}

func newRegistry(kv KV, key, name string, defaults []string) *Registry {
	r := &Registry{kv: kv, key: key, name: name, defaults: defaults}
	r.load()
	return r
}

func (r *Registry) load() {
	r.entries = append([]string(nil), r.defaults...)

	raw, ok, err := r.kv.Get(r.key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", errors.LoadError(r.name+" registry", err))
		return
	}
	if !ok {
		return
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", errors.LoadError(r.name+" registry", err))
		return
	}
	r.entries = stored
}

// Normalize lowercases a registry value, trims it, and turns internal
// whitespace into underscores.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(value))), "_")
}

// Add normalizes rawValue, appends it and persists the registry.
func (r *Registry) Add(rawValue string) error {
	value := Normalize(rawValue)
	if value == "" {
		return errors.EmptyValueError(r.name)
	}
	if r.Has(value) {
		return errors.AlreadyExistsError(r.name + " '" + value + "'")
	}

	r.entries = append(r.entries, value)
	if err := r.persist(); err != nil {
		r.entries = r.entries[:len(r.entries)-1]
		return err
	}
	return nil
}

// Remove deletes the exact entry and persists. Removing an absent entry is a
// no-op.
func (r *Registry) Remove(value string) error {
	for i, entry := range r.entries {
		if entry == value {
			removed := r.entries[i]
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			if err := r.persist(); err != nil {
				r.entries = append(r.entries[:i], append([]string{removed}, r.entries[i:]...)...)
				return err
			}
			return nil
		}
	}
	return nil
}

// Has reports whether the exact value is registered.
func (r *Registry) Has(value string) bool {
	for _, entry := range r.entries {
		if entry == value {
			return true
		}
	}
	return false
}

// List returns the entries in insertion order.
func (r *Registry) List() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) persist() error {
	data, err := json.Marshal(r.entries)
	if err != nil {
		return errors.PersistenceError("serialize "+r.name+" registry", err)
	}
	if err := r.kv.Set(r.key, string(data)); err != nil {
		return errors.PersistenceError("write "+r.name+" registry", err)
	}
	return nil
}
