package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
)

var errStoreDown = errors.New("store unavailable")

type fakeMovieStore struct {
	movies []model.Movie
	fail   bool
}

func (f *fakeMovieStore) ListAll(context.Context) ([]model.Movie, error) {
	if f.fail {
		return nil, errStoreDown
	}
	return f.movies, nil
}

func (f *fakeMovieStore) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	if f.fail {
		return nil, errStoreDown
	}
	for _, m := range f.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, errors.New("movie not found")
}

type fakeCompanyStore struct {
	byOwner map[uint64][]model.Company
	fail    bool
}

func (f *fakeCompanyStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Company, error) {
	if f.fail {
		return nil, errStoreDown
	}
	return f.byOwner[ownerID], nil
}

func TestListMoviesFallsBackToLastFetch(t *testing.T) {
	ms := &fakeMovieStore{movies: []model.Movie{{ID: 1, Name: "Inception"}, {ID: 2, Name: "Dune"}}}
	svc := New(ms, &fakeCompanyStore{})

	got, err := svc.ListMovies(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	ms.fail = true
	got, err = svc.ListMovies(context.Background())
	assert.NoError(t, err, "transport failure degrades to the cached collection")
	assert.Len(t, got, 2)
	assert.Equal(t, "Inception", got[0].Name)
}

func TestListMoviesNoCacheYetPropagatesError(t *testing.T) {
	svc := New(&fakeMovieStore{fail: true}, &fakeCompanyStore{})
	_, err := svc.ListMovies(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
}

func TestMovieByIDNeverDegrades(t *testing.T) {
	ms := &fakeMovieStore{movies: []model.Movie{{ID: 1, Name: "Inception"}}}
	svc := New(ms, &fakeCompanyStore{})

	_, err := svc.ListMovies(context.Background())
	assert.NoError(t, err)

	ms.fail = true
	_, err = svc.MovieByID(context.Background(), 1)
	assert.ErrorIs(t, err, errStoreDown, "point lookups must not serve stale data")
}

func TestCompaniesByOwnerCachesPerOwner(t *testing.T) {
	cs := &fakeCompanyStore{byOwner: map[uint64][]model.Company{
		5: {{ID: 10, OwnerID: 5, Name: "Cineverse"}},
		6: {{ID: 11, OwnerID: 6, Name: "Galaxy"}},
	}}
	svc := New(&fakeMovieStore{}, cs)

	got, err := svc.CompaniesByOwner(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	cs.fail = true
	got, err = svc.CompaniesByOwner(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, "Cineverse", got[0].Name)

	// Owner 6 was never fetched successfully; no snapshot to serve.
	_, err = svc.CompaniesByOwner(context.Background(), 6)
	assert.ErrorIs(t, err, errStoreDown)
}
