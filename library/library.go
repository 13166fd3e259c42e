// Package library holds the book and movie collections served by the GraphQL API
// together with the lookup and mutation rules applied to them.
package library

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is the single domain error kind, returned when a title or hero name lookup fails.
	ErrNotFound = errors.New("not found")

	ErrMovieNotFound = fmt.Errorf("movie %w", ErrNotFound)
	ErrHeroNotFound  = fmt.Errorf("hero %w", ErrNotFound)
)

type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type Hero struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Movie is looked up by title, the first movie with a matching title wins.
// Heroes is nil when the movie never had a heroes list.
type Movie struct {
	Title  string `json:"title"`
	Heroes []Hero `json:"heroes"`
	Author string `json:"author"`
}

func (m Movie) clone() Movie {
	if m.Heroes != nil {
		heroes := make([]Hero, len(m.Heroes))
		copy(heroes, m.Heroes)
		m.Heroes = heroes
	}

	return m
}

func (m Movie) heroIndex(name string) int {
	for i, h := range m.Heroes {
		if h.Name == name {
			return i
		}
	}

	return -1
}

func (m Movie) heroNames() []string {
	names := make([]string, 0, len(m.Heroes))

	for _, h := range m.Heroes {
		names = append(names, h.Name)
	}

	return names
}

func (m Movie) hasHeroAged(age int) bool {
	for _, h := range m.Heroes {
		if h.Age == age {
			return true
		}
	}

	return false
}

// Library applies the query and mutation rules on top of a Store.
type Library struct {
	store  Store
	logger *zap.Logger
}

func New(s Store, l *zap.Logger) *Library {
	if l == nil {
		l = zap.NewNop()
	}

	return &Library{
		store:  s,
		logger: l,
	}
}

func (l *Library) Books(ctx context.Context) ([]Book, error) {
	return l.store.Books(ctx)
}

func (l *Library) AllMovies(ctx context.Context) ([]Movie, error) {
	return l.store.Movies(ctx)
}

// Movies returns every movie when heroAge is nil, otherwise the movies having
// at least one hero of exactly that age, in storage order.
func (l *Library) Movies(ctx context.Context, heroAge *int) ([]Movie, error) {
	movies, err := l.store.Movies(ctx)

	if err != nil || heroAge == nil {
		return movies, err
	}

	filtered := make([]Movie, 0, len(movies))

	for _, m := range movies {
		if m.hasHeroAged(*heroAge) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

// AddHeroToMovie appends hero to the movie, or replaces the hero having the same name.
func (l *Library) AddHeroToMovie(ctx context.Context, movieTitle string, hero Hero) (*Movie, error) {
	return l.store.UpdateMovie(ctx, movieTitle, func(m *Movie) error {
		if m.Heroes == nil {
			m.Heroes = []Hero{}
		}

		if i := m.heroIndex(hero.Name); i != -1 {
			m.Heroes[i] = hero
		} else {
			m.Heroes = append(m.Heroes, hero)
		}

		return nil
	})
}

// UpdateHeroInMovie overwrites the hero named currentHeroName with newHero.
func (l *Library) UpdateHeroInMovie(ctx context.Context, movieTitle, currentHeroName string, newHero Hero) (*Movie, error) {
	m, err := l.store.UpdateMovie(ctx, movieTitle, func(m *Movie) error {
		i := m.heroIndex(currentHeroName)

		if i == -1 {
			l.logger.Info(
				"hero not found in movie",
				zap.String("hero", currentHeroName),
				zap.String("movie", movieTitle),
				zap.Strings("existing_heroes", m.heroNames()),
			)

			return ErrHeroNotFound
		}

		m.Heroes[i] = newHero

		return nil
	})

	if errors.Is(err, ErrMovieNotFound) {
		l.logger.Info("movie not found", zap.String("movie", movieTitle))
	}

	return m, err
}

func (l *Library) UpdateMovieTitle(ctx context.Context, currentTitle, newTitle string) (*Movie, error) {
	return l.store.UpdateMovie(ctx, currentTitle, func(m *Movie) error {
		m.Title = newTitle

		return nil
	})
}

// Reset restores the seed data.
func (l *Library) Reset(ctx context.Context) error {
	return l.store.Reset(ctx)
}
