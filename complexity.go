package moviegraph

import (
	"fmt"

	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
)

// Complexity limits accepted requests, a zero limit is disabled.
type Complexity struct {
	// Max query depth.
	MaxDepth int `json:"max_depth,omitempty"`

	// Max number of nodes a query may resolve.
	NodeCountLimit int `json:"node_count_limit,omitempty"`

	// Max query complexity.
	MaxComplexity int `json:"max_complexity,omitempty"`
}

// validateRequest reports one error per exceeded limit.
func (c *Complexity) validateRequest(s *graphql.Schema, r *graphql.Request) graphql.RequestErrors {
	result, err := r.CalculateComplexity(graphql.DefaultComplexityCalculator, s)

	if err != nil {
		return graphql.RequestErrorsFromError(err)
	}

	var requestErrors graphql.RequestErrors

	limits := []struct {
		name           string
		limit, current int
	}{
		{"query max depth", c.MaxDepth, result.Depth},
		{"query node count limit", c.NodeCountLimit, result.NodeCount},
		{"max query complexity", c.MaxComplexity, result.Complexity},
	}

	for _, l := range limits {
		if l.limit > 0 && l.current > l.limit {
			requestErrors = append(requestErrors, graphql.RequestError{
				Message: fmt.Sprintf("%s is %d, current %d", l.name, l.limit, l.current),
			})
		}
	}

	return requestErrors
}
