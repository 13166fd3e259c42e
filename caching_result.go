package moviegraph

import (
	"context"
	"time"

	"github.com/caddyserver/caddy/v2"
	"github.com/eko/gocache/v2/store"
	"github.com/pquerna/cachecontrol/cacheobject"
)

type cachingQueryResultStatus string

const (
	CachingQueryResultStale cachingQueryResultStatus = "STALE"
	CachingQueryResultValid cachingQueryResultStatus = "VALID"
)

type cachingQueryResult struct {
	Body       []byte
	HitTime    uint64
	CreatedAt  time.Time
	Expiration time.Duration
	MaxAge     caddy.Duration
	Swr        caddy.Duration
	Tags       cachingTags

	plan *cachingPlan
}

func (c *Caching) getCachingQueryResult(ctx context.Context, plan *cachingPlan) (*cachingQueryResult, error) {
	result := &cachingQueryResult{
		plan: plan,
	}

	if _, err := c.store.Get(ctx, plan.queryResultCacheKey, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Caching) cachingQueryResult(ctx context.Context, request *cachingRequest, plan *cachingPlan, body []byte) error {
	tags := make(cachingTags)
	analyzer := newCachingTagAnalyzer(request, c.TypeKeys)

	if err := analyzer.AnalyzeResult(body, plan.Types, tags); err != nil {
		return err
	}

	result := &cachingQueryResult{
		Body:      body,
		CreatedAt: time.Now(),
		MaxAge:    plan.MaxAge,
		Swr:       plan.Swr,
		Tags:      tags,
	}

	result.Expiration = time.Duration(result.MaxAge) + time.Duration(result.Swr)

	return c.store.Set(ctx, plan.queryResultCacheKey, result, &store.Options{
		Tags:       tags.ToSlice(),
		Expiration: result.Expiration,
	})
}

func (c *Caching) increaseQueryResultHitTimes(ctx context.Context, r *cachingQueryResult) error {
	remaining := r.Expiration - r.Age()

	if remaining <= 0 {
		return nil
	}

	r.HitTime++

	return c.store.Set(ctx, r.plan.queryResultCacheKey, r, &store.Options{
		Tags:       r.Tags.ToSlice(),
		Expiration: remaining,
	})
}

func (r *cachingQueryResult) Age() time.Duration {
	return time.Since(r.CreatedAt)
}

func (r *cachingQueryResult) Status() cachingQueryResultStatus {
	if time.Duration(r.MaxAge) >= r.Age() {
		return CachingQueryResultValid
	}

	return CachingQueryResultStale
}

// Expired reports whether the result outlived max age plus swr, some stores only expire by the second.
func (r *cachingQueryResult) Expired() bool {
	return r.Age() > r.Expiration
}

// ValidFor checks the result against request cache control directives
// https://datatracker.ietf.org/doc/html/rfc7234#section-5.2.1
func (r *cachingQueryResult) ValidFor(cc *cacheobject.RequestCacheDirectives) bool {
	status := r.Status()
	age := r.Age()
	maxAge := time.Duration(r.MaxAge)

	if cc.NoCache && status == CachingQueryResultStale {
		return false
	}

	if cc.MinFresh != -1 && age+time.Duration(cc.MinFresh)*time.Second > maxAge {
		return false
	}

	if cc.MaxAge != -1 {
		d := time.Duration(cc.MaxAge) * time.Second

		if d >= age && status == CachingQueryResultValid {
			return true
		}

		if cc.MaxStaleSet && status == CachingQueryResultStale {
			if cc.MaxStale == -1 {
				return true
			}

			return d+time.Duration(cc.MaxStale)*time.Second >= age
		}

		return false
	}

	if cc.MaxStaleSet {
		if cc.MaxStale == -1 || status == CachingQueryResultValid {
			return true
		}

		return maxAge+time.Duration(cc.MaxStale)*time.Second >= age
	}

	return true
}
