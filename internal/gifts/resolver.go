// Package gifts resolves what a user typed into a known gift.
package gifts

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"GiftChart/internal/model"
)

// DefaultSuggestions is how many alternatives a failed lookup offers.
const DefaultSuggestions = 5

// windowSuffix is the optional window hint users append to a gift name.
const windowSuffix = " 12h"

type alias struct {
	key, name string
}

// Gift is a catalog entry.
type Gift struct {
	Name string
	ID   string
}

// Resolver maps free text to catalog gifts. It is immutable after construction.
type Resolver struct {
	aliases map[string]string
	byLower map[string]Gift
	names   []string
}

// NewResolver builds a resolver over catalog, which maps gift id to name.
// A nil catalog falls back to the canonical alias targets, without ids.
func NewResolver(catalog map[string]string) *Resolver {
	r := &Resolver{
		aliases: make(map[string]string, len(aliases)),
		byLower: make(map[string]Gift),
	}
	for _, a := range aliases {
		r.aliases[a.key] = a.name
	}

	if catalog == nil {
		for _, a := range aliases {
			if _, ok := r.byLower[strings.ToLower(a.name)]; !ok {
				r.byLower[strings.ToLower(a.name)] = Gift{Name: a.name}
				r.names = append(r.names, a.name)
			}
		}
	}
	for id, name := range catalog {
		r.byLower[strings.ToLower(name)] = Gift{Name: name, ID: id}
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// HasIDs reports whether any known gift carries an id, which remote icon
// lookups need.
func (r *Resolver) HasIDs() bool {
	for _, g := range r.byLower {
		if g.ID != "" {
			return true
		}
	}
	return false
}

// LoadCatalog reads an id to name JSON object from path.
func LoadCatalog(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gift catalog: %w", err)
	}
	var catalog map[string]string
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse gift catalog: %w", err)
	}
	return catalog, nil
}

// Clean trims text and strips a trailing window hint.
func Clean(text string) string {
	name := strings.TrimSpace(text)
	if strings.HasSuffix(strings.ToLower(name), windowSuffix) {
		name = name[:len(name)-len(windowSuffix)]
	}
	return strings.TrimSpace(name)
}

// Resolve returns the gift text refers to. The error wraps model.ErrGiftNotFound.
func (r *Resolver) Resolve(text string) (Gift, error) {
	name := Clean(text)
	lower := strings.ToLower(name)
	if mapped, ok := r.aliases[lower]; ok {
		lower = strings.ToLower(mapped)
	}
	if g, ok := r.byLower[lower]; ok {
		return g, nil
	}
	return Gift{}, fmt.Errorf("%q: %w", name, model.ErrGiftNotFound)
}

// Lookup returns the catalog entry for an exact canonical name.
func (r *Resolver) Lookup(name string) (Gift, bool) {
	g, ok := r.byLower[strings.ToLower(name)]
	return g, ok
}

// Suggest returns up to limit gift names that share a word with text:
// alias matches first, then catalog names.
func (r *Resolver) Suggest(text string, limit int) []string {
	words := strings.Fields(strings.ToLower(Clean(text)))
	if len(words) == 0 || limit <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(name string) bool {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
		return len(out) >= limit
	}

	for _, a := range aliases {
		if containsAny(a.key, words) {
			if _, ok := r.byLower[strings.ToLower(a.name)]; ok && add(a.name) {
				return out
			}
		}
	}
	for _, name := range r.names {
		if containsAny(strings.ToLower(name), words) && add(name) {
			return out
		}
	}
	return out
}

// Names returns every catalog gift name, sorted.
func (r *Resolver) Names() []string {
	return append([]string(nil), r.names...)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
