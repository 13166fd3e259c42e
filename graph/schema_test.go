package graph

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/moviegraph/moviegraph/library"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

func newTestSchema(t *testing.T) *graphql.Schema {
	t.Helper()

	l := library.New(library.NewMemoryStore(), zap.NewNop())
	s, err := NewSchema(NewResolver(l, zap.NewNop()))
	require.NoError(t, err)

	return s
}

func exec(t *testing.T, s *graphql.Schema, query string, variables map[string]interface{}) *graphql.Response {
	t.Helper()

	return s.Exec(context.Background(), query, "", variables)
}

func TestSchema_Contract(t *testing.T) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SDL})
	require.Nil(t, err)

	query := schema.Query
	require.NotNil(t, query.Fields.ForName("books"))
	require.NotNil(t, query.Fields.ForName("allMovies"))
	require.Equal(t, "Int", query.Fields.ForName("movies").Arguments.ForName("heroAge").Type.String())

	mutation := schema.Mutation
	require.NotNil(t, mutation.Fields.ForName("addHeroToMovie"))
	require.NotNil(t, mutation.Fields.ForName("updateHeroInMovie"))
	require.NotNil(t, mutation.Fields.ForName("updateMovietitle"))
	require.Nil(t, mutation.Fields.ForName("updateMovie"))

	heroInput := schema.Types["HeroInput"]
	require.Equal(t, "String!", heroInput.Fields.ForName("name").Type.String())
	require.Equal(t, "Int!", heroInput.Fields.ForName("age").Type.String())
}

func TestQueries(t *testing.T) {
	testCases := map[string]struct {
		query        string
		variables    map[string]interface{}
		expectedData string
	}{
		"books": {
			query:        `{ books { title author } }`,
			expectedData: `{"books":[{"title":"The Awakening","author":"Kate Chopin"},{"title":"City of Glass","author":"Paul Auster"},{"title":"Twilight","author":"Stephanie Meyer"},{"title":"The Great Gatsby","author":"F. Scott Fitzgerald"}]}`,
		},
		"all_movies": {
			query:        `{ allMovies { title } }`,
			expectedData: `{"allMovies":[{"title":"Star Wars"},{"title":"Asoka"},{"title":"Mandalorian"},{"title":"Spider-Man"},{"title":"The Notebook"},{"title":"Shrek"}]}`,
		},
		"movies_without_hero_age": {
			query:        `{ movies { title } }`,
			expectedData: `{"movies":[{"title":"Star Wars"},{"title":"Asoka"},{"title":"Mandalorian"},{"title":"Spider-Man"},{"title":"The Notebook"},{"title":"Shrek"}]}`,
		},
		"movies_hero_age_17": {
			query:        `query ($age: Int) { movies(heroAge: $age) { title heroes { name age } } }`,
			variables:    map[string]interface{}{"age": float64(17)},
			expectedData: `{"movies":[{"title":"Asoka","heroes":[{"name":"Ahsoka Tano","age":17}]},{"title":"Spider-Man","heroes":[{"name":"Peter Parker","age":17}]},{"title":"The Notebook","heroes":[{"name":"Noah Calhoun","age":17}]}]}`,
		},
		"movies_hero_age_99": {
			query:        `{ movies(heroAge: 99) { title } }`,
			expectedData: `{"movies":[]}`,
		},
	}

	s := newTestSchema(t)

	for name, testCase := range testCases {
		resp := exec(t, s, testCase.query, testCase.variables)

		require.Emptyf(t, resp.Errors, "case %s: unexpected errors", name)
		require.JSONEqf(t, testCase.expectedData, string(resp.Data), "case %s: unexpected data", name)
	}
}

func TestMutations(t *testing.T) {
	s := newTestSchema(t)

	resp := exec(t, s, `mutation { addHeroToMovie(movieTitle: "Star Wars", hero: {name: "Han Solo", age: 32}) { title heroes { name age } } }`, nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"addHeroToMovie":{"title":"Star Wars","heroes":[{"name":"Luke Skywalker","age":25},{"name":"Han Solo","age":32}]}}`, string(resp.Data))

	resp = exec(t, s, `mutation { addHeroToMovie(movieTitle: "Star Wars", hero: {name: "Luke Skywalker", age: 26}) { heroes { name age } } }`, nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"addHeroToMovie":{"heroes":[{"name":"Luke Skywalker","age":26},{"name":"Han Solo","age":32}]}}`, string(resp.Data))

	resp = exec(t, s, `mutation ($hero: HeroInput!) { updateHeroInMovie(movieTitle: "Shrek", currentHeroName: "Princess Fiona", newHero: $hero) { title heroes { name age } } }`, map[string]interface{}{
		"hero": map[string]interface{}{"name": "Fiona", "age": float64(30)},
	})
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"updateHeroInMovie":{"title":"Shrek","heroes":[{"name":"Fiona","age":30}]}}`, string(resp.Data))

	resp = exec(t, s, `mutation { updateMovietitle(currentTitle: "Mandalorian", newTitle: "The Mandalorian") { title author } }`, nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"updateMovietitle":{"title":"The Mandalorian","author":"George Lucas"}}`, string(resp.Data))

	resp = exec(t, s, `{ allMovies { title heroes { name } } }`, nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"allMovies":[
		{"title":"Star Wars","heroes":[{"name":"Luke Skywalker"},{"name":"Han Solo"}]},
		{"title":"Asoka","heroes":[{"name":"Ahsoka Tano"}]},
		{"title":"The Mandalorian","heroes":[{"name":"Din Djarin"}]},
		{"title":"Spider-Man","heroes":[{"name":"Peter Parker"}]},
		{"title":"The Notebook","heroes":[{"name":"Noah Calhoun"}]},
		{"title":"Shrek","heroes":[{"name":"Fiona"}]}
	]}`, string(resp.Data))
}

func TestMutations_NotFound(t *testing.T) {
	testCases := map[string]struct {
		query           string
		field           string
		expectedMessage string
	}{
		"add_hero_unknown_movie": {
			query:           `mutation { addHeroToMovie(movieTitle: "Mandalorian 2", hero: {name: "Grogu", age: 50}) { title } }`,
			field:           "addHeroToMovie",
			expectedMessage: "Movie not found",
		},
		"update_hero_unknown_movie": {
			query:           `mutation { updateHeroInMovie(movieTitle: "NoSuchMovie", currentHeroName: "X", newHero: {name: "Y", age: 1}) { title } }`,
			field:           "updateHeroInMovie",
			expectedMessage: "Movie not found",
		},
		"update_hero_unknown_hero": {
			query:           `mutation { updateHeroInMovie(movieTitle: "Shrek", currentHeroName: "Donkey", newHero: {name: "Donkey", age: 10}) { title } }`,
			field:           "updateHeroInMovie",
			expectedMessage: "Hero not found",
		},
		"update_title_unknown_movie": {
			query:           `mutation { updateMovietitle(currentTitle: "NoSuchMovie", newTitle: "X") { title } }`,
			field:           "updateMovietitle",
			expectedMessage: "Movie not found",
		},
	}

	s := newTestSchema(t)

	for name, testCase := range testCases {
		resp := exec(t, s, testCase.query, nil)

		require.Lenf(t, resp.Errors, 1, "case %s: expected one error", name)
		require.Equalf(t, testCase.expectedMessage, resp.Errors[0].Message, "case %s: unexpected error message", name)
		require.Equalf(t, ErrorCodeNotFound, resp.Errors[0].Extensions["code"], "case %s: unexpected error code", name)

		data := map[string]interface{}{}
		require.NoErrorf(t, json.Unmarshal(resp.Data, &data), "case %s: invalid data", name)
		require.Containsf(t, data, testCase.field, "case %s: field should be present", name)
		require.Nilf(t, data[testCase.field], "case %s: field should be null", name)
	}

	resp := exec(t, s, `{ allMovies { title heroes { name age } } }`, nil)
	require.Empty(t, resp.Errors)
	require.JSONEq(t, `{"allMovies":[
		{"title":"Star Wars","heroes":[{"name":"Luke Skywalker","age":25}]},
		{"title":"Asoka","heroes":[{"name":"Ahsoka Tano","age":17}]},
		{"title":"Mandalorian","heroes":[{"name":"Din Djarin","age":36}]},
		{"title":"Spider-Man","heroes":[{"name":"Peter Parker","age":17}]},
		{"title":"The Notebook","heroes":[{"name":"Noah Calhoun","age":17}]},
		{"title":"Shrek","heroes":[{"name":"Princess Fiona","age":30}]}
	]}`, string(resp.Data), "failed mutations must leave the collections unchanged")
}

func TestUpdateMovieIsNotServed(t *testing.T) {
	s := newTestSchema(t)
	resp := exec(t, s, `mutation { updateMovie(currentTitle: "Shrek", newTitle: "Shrek 2") { title } }`, nil)

	require.NotEmpty(t, resp.Errors)
	require.Contains(t, resp.Errors[0].Message, `Cannot query field "updateMovie"`)
}

func TestHeroInputRequiresAllFields(t *testing.T) {
	s := newTestSchema(t)
	resp := exec(t, s, `mutation { addHeroToMovie(movieTitle: "Shrek", hero: {name: "Donkey"}) { title } }`, nil)

	require.NotEmpty(t, resp.Errors)
}
