package moviegraph

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
	"github.com/jensneuse/graphql-go-tools/pkg/operationreport"
	"go.uber.org/zap"
)

const (
	cachingDebugKeyHeader  = "x-debug-moviegraph-cache-key"
	cachingDebugTagsHeader = "x-debug-moviegraph-cache-tags"
)

var errHandleUnknownOperationType = errors.New("unknown operation type")

// HandleRequest executes r, caching query results by configured rules and purging them on mutations.
func (c *Caching) HandleRequest(w http.ResponseWriter, r *cachingRequest, execute executor) error {
	operationType, _ := r.gqlRequest.OperationType()

	switch operationType {
	case graphql.OperationTypeQuery:
		return c.handleQueryRequest(w, r, execute)
	case graphql.OperationTypeMutation:
		return c.handleMutationRequest(w, r, execute)
	}

	return errHandleUnknownOperationType
}

func (c *Caching) handleQueryRequest(w http.ResponseWriter, r *cachingRequest, execute executor) error {
	plan, err := c.getCachingPlan(r)

	if err != nil {
		report := &operationreport.Report{}
		report.AddInternalError(err)

		return report
	}

	ctx := r.httpRequest.Context()
	status, result := c.resolvePlan(r, plan)

	switch status {
	case CachingStatusMiss:
		defer c.addMetricsCacheMiss(r.gqlRequest)

		executed, err := execute(ctx, r.execRequest)

		if err != nil {
			return err
		}

		// respect no-store directive
		if !executed.Failed && (r.cacheControl == nil || !r.cacheControl.NoStore) {
			if err = c.cachingQueryResult(ctx, r, plan, executed.Body); err != nil {
				c.logger.Info("fail to cache query result", zap.Error(err))
			} else {
				c.logger.Info("caching query result successful", zap.String("cache_key", plan.queryResultCacheKey))
			}
		}

		c.addCachingResponseHeaders(status, nil, plan, w.Header())

		return writeExecutionResult(w, executed)
	case CachingStatusHit:
		defer c.addMetricsCacheHit(r.gqlRequest)

		c.addCachingResponseHeaders(status, result, plan, w.Header())
		err = writeExecutionResult(w, &executionResult{Body: result.Body})

		if result.Status() != CachingQueryResultStale {
			return err
		}

		go func() {
			if err := c.swrQueryResult(result, r, execute); err != nil {
				c.logger.Info("swr failed, can not update query result", zap.String("cache_key", plan.queryResultCacheKey), zap.Error(err))
			} else {
				c.logger.Info("swr query result successful", zap.String("cache_key", plan.queryResultCacheKey))
			}
		}()

		return err
	default:
		defer c.addMetricsCachePass(r.gqlRequest)

		executed, err := execute(ctx, r.execRequest)

		if err != nil {
			return err
		}

		c.addCachingResponseHeaders(status, nil, plan, w.Header())

		return writeExecutionResult(w, executed)
	}
}

func (c *Caching) resolvePlan(r *cachingRequest, p *cachingPlan) (CachingStatus, *cachingQueryResult) {
	if p.Passthrough {
		return CachingStatusPass, nil
	}

	ctx := r.httpRequest.Context()
	result, _ := c.getCachingQueryResult(ctx, p)

	if result == nil || result.Expired() {
		return CachingStatusMiss, nil
	}

	if r.cacheControl != nil && !result.ValidFor(r.cacheControl) {
		return CachingStatusMiss, nil
	}

	if err := c.increaseQueryResultHitTimes(ctx, result); err != nil {
		c.logger.Debug("fail to increase query result hit times", zap.Error(err))
	}

	return CachingStatusHit, result
}

func (c *Caching) addCachingResponseHeaders(s CachingStatus, r *cachingQueryResult, p *cachingPlan, h http.Header) {
	h.Set("x-cache", string(s))

	if s == CachingStatusPass {
		return
	}

	if c.DebugHeaders {
		h.Set(cachingDebugKeyHeader, p.queryResultCacheKey)
	}

	if s != CachingStatusHit {
		return
	}

	age := int64(r.Age().Seconds())
	cacheControl := []string{
		"public",
		fmt.Sprintf("s-maxage=%d", int64(time.Duration(r.MaxAge).Seconds())),
	}

	if r.Swr > 0 {
		cacheControl = append(cacheControl, fmt.Sprintf("stale-while-revalidate=%d", int64(time.Duration(r.Swr).Seconds())))
	}

	h.Set("age", fmt.Sprintf("%d", age))
	h.Set("cache-control", strings.Join(cacheControl, "; "))
	h.Set("x-cache-hits", fmt.Sprintf("%d", r.HitTime))

	if c.DebugHeaders {
		h.Set(cachingDebugTagsHeader, strings.Join(r.Tags.ToSlice(), "; "))
	}
}

func (c *Caching) handleMutationRequest(w http.ResponseWriter, r *cachingRequest, execute executor) error {
	ctx := r.httpRequest.Context()
	executed, err := execute(ctx, r.execRequest)

	if err != nil {
		return err
	}

	if c.AutoInvalidate {
		if err = c.purgeQueryResultByMutationResult(ctx, r, executed.Body); err != nil {
			c.logger.Info("fail to purge query result", zap.Error(err))
		}
	}

	return writeExecutionResult(w, executed)
}
