// Package graph serves the library collections through a GraphQL schema.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"github.com/moviegraph/moviegraph/library"
	"go.uber.org/zap"
)

// SDL of the served schema.
//go:embed schema.graphql
var SDL string

type Resolver struct {
	library *library.Library
	logger  *zap.Logger
}

func NewResolver(l *library.Library, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		library: l,
		logger:  logger,
	}
}

// NewSchema parses SDL and binds it to r, extra options are applied after the defaults.
func NewSchema(r *Resolver, opts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	defaults := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{r.logger}),
		graphql.MaxParallelism(20),
	}

	return graphql.ParseSchema(SDL, r, append(defaults, opts...)...)
}

type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.logger.Error("graphql resolver panic", zap.String("value", fmt.Sprintf("%v", value)))
}
