package library

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

var (
	storeFactories   = make(map[string]StoreFactory)
	storeFactoriesMu sync.RWMutex
)

func init() { // nolint:gochecknoinits
	RegisterStoreFactory("memory", MemoryStoreFactory)
	RegisterStoreFactory("freecache", CacheStoreFactory)
	RegisterStoreFactory("redis", CacheStoreFactory)
}

// Store owns the collections. Reads return copies in storage order.
type Store interface {
	Books(ctx context.Context) ([]Book, error)
	Movies(ctx context.Context) ([]Movie, error)

	// UpdateMovie applies fn to a copy of the first movie titled title and
	// writes it back when fn succeeds. The store is left untouched on any error.
	UpdateMovie(ctx context.Context, title string, fn func(*Movie) error) (*Movie, error)

	// Reset restores the seed data.
	Reset(ctx context.Context) error
	Close() error
}

type StoreFactory = func(u *url.URL) (Store, error)

func RegisterStoreFactory(schema string, factory StoreFactory) {
	storeFactoriesMu.Lock()
	defer storeFactoriesMu.Unlock()

	storeFactories[schema] = factory
}

// NewStore opens the store selected by the DSN schema, ex: memory://, freecache://?cache_size=1048576, redis://localhost:6379?db=1
func NewStore(u *url.URL) (Store, error) {
	storeFactoriesMu.RLock()
	factory, ok := storeFactories[u.Scheme]
	storeFactoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("store schema: %s is not support", u.Scheme)
	}

	return factory(u)
}

func findMovie(movies []Movie, title string) int {
	for i, m := range movies {
		if m.Title == title {
			return i
		}
	}

	return -1
}

func cloneMovies(movies []Movie) []Movie {
	c := make([]Movie, len(movies))

	for i, m := range movies {
		c[i] = m.clone()
	}

	return c
}

func cloneBooks(books []Book) []Book {
	c := make([]Book, len(books))
	copy(c, books)

	return c
}

// updateMovieIn is the find and replace cycle shared by the stores, movies is modified in place on success only.
func updateMovieIn(movies []Movie, title string, fn func(*Movie) error) (*Movie, error) {
	i := findMovie(movies, title)

	if i == -1 {
		return nil, ErrMovieNotFound
	}

	updated := movies[i].clone()

	if err := fn(&updated); err != nil {
		return nil, err
	}

	movies[i] = updated
	result := updated.clone()

	return &result, nil
}
