package moviegraph

import (
	"testing"

	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
	"github.com/stretchr/testify/require"
)

func TestCachingRuleMatch(t *testing.T) {
	requestTypes := graphql.RequestTypes{
		"Query": {"movies": {}},
		"Movie": {"title": {}, "heroes": {}},
		"Hero":  {"name": {}},
	}
	testCases := map[string]struct {
		types    graphql.RequestTypes
		expected bool
	}{
		"without_types": {
			expected: true,
		},
		"type": {
			types:    graphql.RequestTypes{"Movie": {}},
			expected: true,
		},
		"type_fields_selected": {
			types:    graphql.RequestTypes{"Movie": {"title": {}, "heroes": {}}},
			expected: true,
		},
		"type_field_not_selected": {
			types:    graphql.RequestTypes{"Hero": {"age": {}}},
			expected: false,
		},
		"any_type": {
			types:    graphql.RequestTypes{"Book": {}, "Hero": {"name": {}}},
			expected: true,
		},
		"type_not_selected": {
			types:    graphql.RequestTypes{"Book": {}},
			expected: false,
		},
	}

	for name, testCase := range testCases {
		rule := &CachingRule{Types: testCase.types}

		require.Equalf(t, testCase.expected, rule.match(requestTypes), "case %s: unexpected match", name)
	}
}
