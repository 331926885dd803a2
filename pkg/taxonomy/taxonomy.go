// Package taxonomy maps arbitrary provider category strings onto a small
// canonical category set. The normalizer is built once from configuration
// and is immutable afterwards, so Canonicalize is a pure function safe to
// call from any goroutine.
package taxonomy

import (
	"strings"

	"github.com/umputun/newsgate/pkg/config"
)

// Normalizer resolves raw provider categories to canonical keys
type Normalizer struct {
	keys    map[string]string            // lowercased canonical key -> key
	labels  map[string]string            // lowercased display label -> key
	aliases map[string]map[string]string // provider -> lowercased raw -> key
}

// New builds a normalizer from the taxonomy configuration
func New(cfg config.TaxonomyConfig) *Normalizer {
	n := &Normalizer{
		keys:    make(map[string]string, len(cfg.Categories)),
		labels:  make(map[string]string, len(cfg.Categories)),
		aliases: make(map[string]map[string]string, len(cfg.Aliases)),
	}

	for _, cat := range cfg.Categories {
		n.keys[strings.ToLower(cat.Key)] = cat.Key
		if cat.Label != "" {
			n.labels[strings.ToLower(cat.Label)] = cat.Key
		}
	}

	for provider, table := range cfg.Aliases {
		m := make(map[string]string, len(table))
		for raw, key := range table {
			// aliases resolve through the canonical set so a stale alias
			// pointing at a removed category yields nothing
			if canonical, ok := n.keys[strings.ToLower(key)]; ok {
				m[strings.ToLower(raw)] = canonical
			}
		}
		n.aliases[provider] = m
	}

	return n
}

// Canonicalize maps a raw provider category to a canonical key. Resolution
// order: exact key match, provider alias table, display label match. Returns
// empty string when nothing matches.
func (n *Normalizer) Canonicalize(raw, provider string) string {
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(strings.TrimSpace(raw))

	if key, ok := n.keys[lowered]; ok {
		return key
	}
	if table, ok := n.aliases[provider]; ok {
		if key, ok := table[lowered]; ok {
			return key
		}
	}
	if key, ok := n.labels[lowered]; ok {
		return key
	}
	return ""
}

// Known reports whether a canonical key exists in the configured set
func (n *Normalizer) Known(key string) bool {
	_, ok := n.keys[strings.ToLower(key)]
	return ok
}
