package library

import (
	"context"
	"net/url"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	books  []Book
	movies []Movie
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:  SeedBooks(),
		movies: SeedMovies(),
	}
}

func MemoryStoreFactory(_ *url.URL) (Store, error) {
	return NewMemoryStore(), nil
}

func (s *MemoryStore) Books(_ context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneBooks(s.books), nil
}

func (s *MemoryStore) Movies(_ context.Context) ([]Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneMovies(s.movies), nil
}

func (s *MemoryStore) UpdateMovie(_ context.Context, title string, fn func(*Movie) error) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateMovieIn(s.movies, title, fn)
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = SeedBooks()
	s.movies = SeedMovies()

	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
