package admin

import (
	"context"

	"go.uber.org/zap"
)

type libraryStatsResolver struct {
	books, movies, heroes int32
}

func (r *libraryStatsResolver) Books() int32  { return r.books }
func (r *libraryStatsResolver) Movies() int32 { return r.movies }
func (r *libraryStatsResolver) Heroes() int32 { return r.heroes }

func (r *Resolver) Library(ctx context.Context) (*libraryStatsResolver, error) {
	books, err := r.library.Books(ctx)

	if err != nil {
		return nil, err
	}

	movies, err := r.library.AllMovies(ctx)

	if err != nil {
		return nil, err
	}

	stats := &libraryStatsResolver{
		books:  int32(len(books)),
		movies: int32(len(movies)),
	}

	for _, m := range movies {
		stats.heroes += int32(len(m.Heroes))
	}

	return stats, nil
}

func (r *Resolver) ResetLibrary(ctx context.Context) (bool, error) {
	if err := r.library.Reset(ctx); err != nil {
		r.logger.Error("fail to reset library", zap.Error(err))

		return false, err
	}

	if r.purger == nil {
		return true, nil
	}

	if err := r.purger.PurgeQueryResultBySchema(ctx); err != nil {
		r.logger.Warn("fail to purge query result after library reset", zap.Error(err))
	}

	return true, nil
}

func (r *Resolver) PurgeAll(ctx context.Context) bool {
	if r.purger == nil {
		return false
	}

	if err := r.purger.PurgeQueryResultBySchema(ctx); err != nil {
		r.logger.Warn("fail to purge query result by schema", zap.Error(err))

		return false
	}

	return true
}

func (r *Resolver) PurgeOperation(ctx context.Context, args struct{ Name string }) bool {
	if r.purger == nil {
		return false
	}

	if err := r.purger.PurgeQueryResultByOperationName(ctx, args.Name); err != nil {
		r.logger.Warn("fail to purge query result by operation name", zap.Error(err))

		return false
	}

	return true
}

func (r *Resolver) PurgeTypeKey(ctx context.Context, args struct {
	Type  string
	Field string
	Key   string
}) bool {
	if r.purger == nil {
		return false
	}

	if err := r.purger.PurgeQueryResultByTypeKey(ctx, args.Type, args.Field, args.Key); err != nil {
		r.logger.Warn("fail to purge query result by type key", zap.Error(err))

		return false
	}

	return true
}

func (r *Resolver) PurgeQueryRootField(ctx context.Context, args struct{ Field string }) bool {
	if r.purger == nil {
		return false
	}

	if err := r.purger.PurgeQueryResultByTypeField(ctx, queryTypeName, args.Field); err != nil {
		r.logger.Warn("fail to purge query result by root field", zap.Error(err))

		return false
	}

	return true
}

func (r *Resolver) PurgeType(ctx context.Context, args struct{ Type string }) (bool, error) {
	if r.purger == nil {
		return false, nil
	}

	if err := r.purger.PurgeQueryResultByTypeName(ctx, args.Type); err != nil {
		r.logger.Warn("fail to purge query result by type", zap.Error(err))

		return false, err
	}

	return true, nil
}
