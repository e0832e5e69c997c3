// Package catalog exposes movies and companies as read-mostly reference
// collections. List reads keep a last-known snapshot so browsing can
// degrade gracefully when the backing store is briefly unreachable; the
// snapshot is never authoritative and by-ID lookups always hit the
// store.
package catalog

import (
	"context"
	"sync"

	"github.com/movietix/movietix/internal/model"
)

// MovieStore is the persistence surface the catalog needs for movies.
type MovieStore interface {
	ListAll(ctx context.Context) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// CompanyStore is the persistence surface the catalog needs for
// companies.
type CompanyStore interface {
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Company, error)
}

// Service caches the last successful list fetch per collection and
// serves it when the store fails. It is safe for concurrent use.
type Service struct {
	movies    MovieStore
	companies CompanyStore

	mu            sync.RWMutex
	lastMovies    []model.Movie
	haveMovies    bool
	lastCompanies map[uint64][]model.Company
}

// New returns a catalog service over the given stores.
func New(movies MovieStore, companies CompanyStore) *Service {
	if movies == nil || companies == nil {
		panic("nil store passed to catalog.New")
	}
	return &Service{
		movies:        movies,
		companies:     companies,
		lastCompanies: make(map[uint64][]model.Company),
	}
}

// ListMovies returns all movies in insertion order. On store failure it
// falls back to the last successful fetch when one exists; the very
// first fetch has nothing to fall back to and propagates the error.
func (s *Service) ListMovies(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.movies.ListAll(ctx)
	if err != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.haveMovies {
			return s.lastMovies, nil
		}
		return nil, err
	}
	s.mu.Lock()
	s.lastMovies = movies
	s.haveMovies = true
	s.mu.Unlock()
	return movies, nil
}

// MovieByID resolves a single movie. Unknown IDs surface the store's
// not-found error; there is no cached fallback for point lookups.
func (s *Service) MovieByID(ctx context.Context, id uint64) (*model.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

// CompaniesByOwner returns the companies owned by a user, falling back
// to the last successful fetch for that owner on store failure.
func (s *Service) CompaniesByOwner(ctx context.Context, ownerID uint64) ([]model.Company, error) {
	companies, err := s.companies.ListByOwner(ctx, ownerID)
	if err != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if cached, ok := s.lastCompanies[ownerID]; ok {
			return cached, nil
		}
		return nil, err
	}
	s.mu.Lock()
	s.lastCompanies[ownerID] = companies
	s.mu.Unlock()
	return companies, nil
}
