// Package admin serves the operator GraphQL API: cached query results purging and library reset.
package admin

import (
	"context"
	_ "embed"

	"github.com/graph-gophers/graphql-go"
	"github.com/moviegraph/moviegraph/library"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var sdl string

const queryTypeName = "Query"

type QueryResultCachePurger interface {
	PurgeQueryResultBySchema(context.Context) error
	PurgeQueryResultByOperationName(context.Context, string) error
	PurgeQueryResultByTypeName(context.Context, string) error
	PurgeQueryResultByTypeField(ctx context.Context, typeName, fieldName string) error
	PurgeQueryResultByTypeKey(ctx context.Context, typeName, fieldName string, value interface{}) error
}

type Resolver struct {
	library *library.Library
	purger  QueryResultCachePurger
	logger  *zap.Logger
}

// NewResolver creates admin resolver, p is nil when query results caching is disabled.
func NewResolver(lib *library.Library, l *zap.Logger, p QueryResultCachePurger) *Resolver {
	return &Resolver{
		library: lib,
		logger:  l,
		purger:  p,
	}
}

func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(sdl, r)
}
