package moviegraph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/eko/gocache/v2/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// purgeQueryResultByMutationResult purges cached results of every non root type selected by the mutation.
func (c *Caching) purgeQueryResultByMutationResult(ctx context.Context, request *cachingRequest, result []byte) error {
	foundTags := make(cachingTags)
	analyzer := newCachingTagAnalyzer(request, c.TypeKeys)

	if err := analyzer.AnalyzeResult(result, nil, foundTags); err != nil {
		return err
	}

	purgeTags := make([]string, 0)

	for _, tag := range foundTags.Types().ToSlice() {
		typeName := tag[len(cachingTagTypePrefix):]

		if typeName == c.schema.QueryTypeName() || typeName == c.schema.MutationTypeName() {
			continue
		}

		purgeTags = append(purgeTags, tag)
	}

	return c.purgeQueryResultByTags(ctx, purgeTags)
}

func (c *Caching) PurgeQueryResultBySchema(ctx context.Context) error {
	hash, err := c.schema.Hash()

	if err != nil {
		return err
	}

	return c.purgeQueryResultByTags(ctx, []string{fmt.Sprintf(cachingTagSchemaHashPattern, hash)})
}

func (c *Caching) PurgeQueryResultByOperationName(ctx context.Context, name string) error {
	return c.purgeQueryResultByTags(ctx, []string{fmt.Sprintf(cachingTagOperationPattern, name)})
}

func (c *Caching) PurgeQueryResultByTypeName(ctx context.Context, name string) error {
	return c.purgeQueryResultByTags(ctx, []string{fmt.Sprintf(cachingTagTypePattern, name)})
}

func (c *Caching) PurgeQueryResultByTypeField(ctx context.Context, typeName, fieldName string) error {
	return c.purgeQueryResultByTags(ctx, []string{fmt.Sprintf(cachingTagTypeFieldPattern, typeName, fieldName)})
}

func (c *Caching) PurgeQueryResultByTypeKey(ctx context.Context, typeName, fieldName string, value interface{}) error {
	switch v := value.(type) {
	case string:
		return c.purgeQueryResultByTags(ctx, []string{fmt.Sprintf(cachingTagTypeKeyPattern, typeName, fieldName, v)})
	case int:
		return c.purgeQueryResultByTags(ctx, []string{fmt.Sprintf(cachingTagTypeKeyPattern, typeName, fieldName, strconv.Itoa(v))})
	default:
		return fmt.Errorf("only support purging type key value int or string, got %T", v)
	}
}

func (c *Caching) purgeQueryResultByTags(ctx context.Context, tags []string) error {
	var err error

	c.logger.Debug("purging query result by tags", zap.Strings("tags", tags))

	// store invalidation stops on the first failing tag, so tags are invalidated one by one.
	for _, t := range tags {
		if e := c.store.Invalidate(ctx, store.InvalidateOptions{Tags: []string{t}}); e != nil {
			if err == nil {
				err = e
			} else {
				err = errors.WithMessage(err, e.Error())
			}
		}
	}

	return err
}
