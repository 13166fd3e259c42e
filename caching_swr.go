package moviegraph

import (
	"fmt"
)

// swrQueryResult executes request again in background and replaces the stale result.
func (c *Caching) swrQueryResult(result *cachingQueryResult, request *cachingRequest, execute executor) error {
	executed, err := execute(c.ctxBackground, request.execRequest)

	if err != nil {
		return err
	}

	if executed.Failed {
		return fmt.Errorf("getting invalid execution result of %s", result.plan.queryResultCacheKey)
	}

	return c.cachingQueryResult(c.ctxBackground, request, result.plan, executed.Body)
}
