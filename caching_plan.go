package moviegraph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/caddyserver/caddy/v2"
	"github.com/jensneuse/graphql-go-tools/pkg/astparser"
	"github.com/jensneuse/graphql-go-tools/pkg/astprinter"
	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
	"github.com/jensneuse/graphql-go-tools/pkg/operationreport"
	"github.com/jensneuse/graphql-go-tools/pkg/pool"
)

const cachingQueryResultKeyPattern = "moviegraph_cqr_%d"

// cachingPlan tells how the result of a query should be cached.
type cachingPlan struct {
	MaxAge      caddy.Duration
	Swr         caddy.Duration
	Types       map[string]struct{}
	Passthrough bool

	queryResultCacheKey string
}

func (c *Caching) getCachingPlan(r *cachingRequest) (*cachingPlan, error) {
	plan := c.computePlan(r)

	if plan.Passthrough {
		return plan, nil
	}

	key, err := queryResultCacheKey(r)

	if err != nil {
		return nil, err
	}

	plan.queryResultCacheKey = key

	return plan, nil
}

// computePlan picks the shortest max age and swr among the rules matching the request.
func (c *Caching) computePlan(r *cachingRequest) *cachingPlan {
	plan := &cachingPlan{
		Passthrough: true,
		Types:       make(map[string]struct{}),
	}

	requestTypes := make(graphql.RequestTypes)
	extractor := graphql.NewExtractor()
	extractor.ExtractFieldsFromRequest(r.gqlRequest, r.schema, &operationreport.Report{}, requestTypes)

	for _, rule := range c.Rules {
		if !rule.match(requestTypes) {
			continue
		}

		if plan.Passthrough || rule.MaxAge < plan.MaxAge {
			plan.MaxAge = rule.MaxAge
		}

		if plan.Passthrough || rule.Swr < plan.Swr {
			plan.Swr = rule.Swr
		}

		// a rule without types caches every type of the result.
		if rule.Types == nil {
			plan.Types = nil
		} else if plan.Types != nil {
			for typeName := range rule.Types {
				plan.Types[typeName] = struct{}{}
			}
		}

		plan.Passthrough = false
	}

	return plan
}

// queryResultCacheKey hashes the schema with the printed normalized request, so equivalent
// documents that only differ by formatting share a key.
func queryResultCacheKey(r *cachingRequest) (string, error) {
	hash := pool.Hash64.Get()
	defer pool.Hash64.Put(hash)
	hash.Reset()

	schemaHash, err := r.schema.Hash()

	if err != nil {
		return "", err
	}

	fmt.Fprintf(hash, "schema=%d; ", schemaHash)

	gqlRequestClone := *r.gqlRequest
	documentBuffer := bufferPool.Get().(*bytes.Buffer)
	defer bufferPool.Put(documentBuffer)
	documentBuffer.Reset()

	if _, err = gqlRequestClone.Print(documentBuffer); err != nil {
		return "", err
	}

	document, _ := astparser.ParseGraphqlDocumentBytes(documentBuffer.Bytes())
	gqlRequestClone.Query, _ = astprinter.PrintString(&document, nil)

	if err = json.NewEncoder(hash).Encode(gqlRequestClone); err != nil {
		return "", err
	}

	return fmt.Sprintf(cachingQueryResultKeyPattern, hash.Sum64()), nil
}
