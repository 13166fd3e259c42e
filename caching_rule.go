package moviegraph

import (
	"github.com/caddyserver/caddy/v2"
	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
)

type CachingRule struct {
	// GraphQL types to cache.
	// ex: `Movie` caches every query result having type Movie.
	// ex: `Movie { heroes }` caches query results having type Movie and selecting its field `heroes`.
	// If not set this rule matches all types.
	Types graphql.RequestTypes `json:"types,omitempty"`

	// How long query results matching the rule types are fresh.
	MaxAge caddy.Duration `json:"max_age,omitempty"`

	// How long stale query results matching the rule types are served while being refreshed in background.
	Swr caddy.Duration `json:"swr,omitempty"`
}

type CachingRules map[string]*CachingRule

// match reports whether the rule covers any of requestTypes, rule type fields must all be selected.
func (r *CachingRule) match(requestTypes graphql.RequestTypes) bool {
	if r.Types == nil {
		return true
	}

	for name, fields := range r.Types {
		selectedFields, ok := requestTypes[name]

		if !ok {
			continue
		}

		matched := true

		for field := range fields {
			if _, ok = selectedFields[field]; !ok {
				matched = false

				break
			}
		}

		if matched {
			return true
		}
	}

	return false
}
