package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
)

func newMovieRepoMock(t *testing.T) (*MovieRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewMovieRepo(db), mock
}

func updateInput() *model.Movie {
	return &model.Movie{
		ID:          5,
		Name:        "Dune",
		Description: "updated synopsis",
		Genres:      []string{"sci-fi"},
		DurationMin: 155,
	}
}

func TestUpdateMovieFrozenBySchedules(t *testing.T) {
	repo, mock := newMovieRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM movies").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.UpdateByIDAndOwner(context.Background(), updateInput(), 7)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovieNoSchedules(t *testing.T) {
	repo, mock := newMovieRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM movies").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec("UPDATE movies").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateByIDAndOwner(context.Background(), updateInput(), 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovieWrongOwner(t *testing.T) {
	repo, mock := newMovieRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM movies").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(9))
	mock.ExpectRollback()

	err := repo.UpdateByIDAndOwner(context.Background(), updateInput(), 7)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovieMissing(t *testing.T) {
	repo, mock := newMovieRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM movies").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.UpdateByIDAndOwner(context.Background(), updateInput(), 7)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
