package library

import (
	"context"
	"net/url"
	"sync"

	"github.com/moviegraph/moviegraph/internal/cachestore"
)

const (
	cacheStoreBooksKey  = "moviegraph_books"
	cacheStoreMoviesKey = "moviegraph_movies"
)

// CacheStore keeps both collections as two marshaled values of a cache backend.
// A missing value is seeded on first access, any other read failure is returned. Read-modify-write cycles are
// serialised per instance only, processes sharing one redis database still race.
type CacheStore struct {
	mu      sync.Mutex
	backend *cachestore.Store
}

func NewCacheStore(backend *cachestore.Store) *CacheStore {
	return &CacheStore{
		backend: backend,
	}
}

func CacheStoreFactory(u *url.URL) (Store, error) {
	backend, err := cachestore.New(u)

	if err != nil {
		return nil, err
	}

	return NewCacheStore(backend), nil
}

func (s *CacheStore) Books(ctx context.Context) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadBooks(ctx)
}

func (s *CacheStore) Movies(ctx context.Context) ([]Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadMovies(ctx)
}

func (s *CacheStore) UpdateMovie(ctx context.Context, title string, fn func(*Movie) error) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies, err := s.loadMovies(ctx)

	if err != nil {
		return nil, err
	}

	m, err := updateMovieIn(movies, title, fn)

	if err != nil {
		return nil, err
	}

	if err = s.backend.Set(ctx, cacheStoreMoviesKey, movies, nil); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *CacheStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Set(ctx, cacheStoreBooksKey, SeedBooks(), nil); err != nil {
		return err
	}

	return s.backend.Set(ctx, cacheStoreMoviesKey, SeedMovies(), nil)
}

func (s *CacheStore) Close() error {
	return s.backend.Close()
}

func (s *CacheStore) loadBooks(ctx context.Context) ([]Book, error) {
	var books []Book

	if _, err := s.backend.Get(ctx, cacheStoreBooksKey, &books); err != nil {
		if !cachestore.IsNotFound(err) {
			return nil, err
		}

		books = SeedBooks()

		if err = s.backend.Set(ctx, cacheStoreBooksKey, books, nil); err != nil {
			return nil, err
		}
	}

	return books, nil
}

func (s *CacheStore) loadMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie

	if _, err := s.backend.Get(ctx, cacheStoreMoviesKey, &movies); err != nil {
		if !cachestore.IsNotFound(err) {
			return nil, err
		}

		movies = SeedMovies()

		if err = s.backend.Set(ctx, cacheStoreMoviesKey, movies, nil); err != nil {
			return nil, err
		}
	}

	return movies, nil
}

// Interface guards
var (
	_ Store = (*CacheStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
