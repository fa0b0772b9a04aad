package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestFilmGetByIDFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFilmRepository(gdb)

	rows := sqlmock.NewRows([]string{"film_id", "title", "rental_rate", "language_id"}).
		AddRow(1, "Academy Dinosaur", 0.99, 1)
	mock.ExpectQuery(`SELECT \* FROM "film" WHERE film_id = \$1`).
		WithArgs(1, 1).
		WillReturnRows(rows)

	f, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Academy Dinosaur", f.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilmGetByIDNotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFilmRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "film" WHERE film_id = \$1`).
		WithArgs(999, 1).
		WillReturnRows(sqlmock.NewRows([]string{"film_id", "title"}))

	f, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestFilmCount(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFilmRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "film"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1000))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)
}

func TestFilmSearchByTitleEscapesPattern(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFilmRepository(gdb)

	// El comodín del usuario viaja escapado, no como comodín.
	mock.ExpectQuery(`SELECT \* FROM "film" WHERE title ILIKE \$1`).
		WithArgs(`%50\% off%`, 10).
		WillReturnRows(sqlmock.NewRows([]string{"film_id", "title"}))

	films, err := repo.SearchByTitle(context.Background(), "50% off", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, films)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
