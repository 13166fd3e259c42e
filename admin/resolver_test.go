package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/moviegraph/moviegraph/library"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purgerMock struct {
	err   error
	calls []string
}

func (p *purgerMock) PurgeQueryResultBySchema(context.Context) error {
	p.calls = append(p.calls, "schema")

	return p.err
}

func (p *purgerMock) PurgeQueryResultByOperationName(_ context.Context, name string) error {
	p.calls = append(p.calls, "operation:"+name)

	return p.err
}

func (p *purgerMock) PurgeQueryResultByTypeName(_ context.Context, name string) error {
	p.calls = append(p.calls, "type:"+name)

	return p.err
}

func (p *purgerMock) PurgeQueryResultByTypeField(_ context.Context, typeName, fieldName string) error {
	p.calls = append(p.calls, "field:"+typeName+":"+fieldName)

	return p.err
}

func (p *purgerMock) PurgeQueryResultByTypeKey(_ context.Context, typeName, fieldName string, value interface{}) error {
	p.calls = append(p.calls, "key:"+typeName+":"+fieldName+":"+value.(string))

	return p.err
}

func newTestResolver(p QueryResultCachePurger) (*Resolver, *library.Library) {
	lib := library.New(library.NewMemoryStore(), zap.NewNop())

	return NewResolver(lib, zap.NewNop(), p), lib
}

func TestSchema(t *testing.T) {
	p := &purgerMock{}
	r, _ := newTestResolver(p)
	s, err := NewSchema(r)
	require.NoError(t, err)

	resp := s.Exec(context.Background(), `{ library { books movies heroes } }`, "", nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"library":{"books":4,"movies":6,"heroes":6}}`, string(resp.Data))

	resp = s.Exec(context.Background(), `mutation {
		purgeAll
		purgeOperation(name: "GetMovies")
		purgeType(type: "Movie")
		purgeQueryRootField(field: "books")
		purgeTypeKey(type: "Movie", field: "title", key: "Shrek")
	}`, "", nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"purgeAll":true,"purgeOperation":true,"purgeType":true,"purgeQueryRootField":true,"purgeTypeKey":true}`, string(resp.Data))
	require.Equal(t, []string{
		"schema",
		"operation:GetMovies",
		"type:Movie",
		"field:Query:books",
		"key:Movie:title:Shrek",
	}, p.calls)
}

func TestResetLibrary(t *testing.T) {
	p := &purgerMock{}
	r, lib := newTestResolver(p)
	ctx := context.Background()

	_, err := lib.AddHeroToMovie(ctx, "Shrek", library.Hero{Name: "Donkey", Age: 10})
	require.NoError(t, err)

	ok, err := r.ResetLibrary(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"schema"}, p.calls)

	movies, _ := lib.AllMovies(ctx)
	require.Equal(t, library.SeedMovies(), movies)
}

func TestPurgeWithoutCaching(t *testing.T) {
	r, _ := newTestResolver(nil)
	ctx := context.Background()

	require.False(t, r.PurgeAll(ctx))
	require.False(t, r.PurgeOperation(ctx, struct{ Name string }{"GetMovies"}))
	require.False(t, r.PurgeQueryRootField(ctx, struct{ Field string }{"books"}))

	ok, err := r.PurgeType(ctx, struct{ Type string }{"Movie"})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.ResetLibrary(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPurgeFailures(t *testing.T) {
	p := &purgerMock{err: errors.New("store down")}
	r, _ := newTestResolver(p)
	ctx := context.Background()

	require.False(t, r.PurgeAll(ctx))
	require.False(t, r.PurgeOperation(ctx, struct{ Name string }{"GetMovies"}))

	ok, err := r.PurgeType(ctx, struct{ Type string }{"Movie"})
	require.Error(t, err)
	require.False(t, ok)

	ok, err = r.ResetLibrary(ctx)
	require.NoError(t, err)
	require.True(t, ok, "reset succeeds even if purging fails")
}
