package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertLanguage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT INTO languages.*ON CONFLICT \(name\) DO UPDATE`).
		WithArgs(sqlmock.AnyArg(), "Polish", "pl").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewReferenceRepository(db)
	require.NoError(t, repo.UpsertLanguage(context.Background(), "Polish", "pl"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertLanguage_IsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The conflict branch updates in place; the repository call succeeds on
	// both the first and every subsequent run.
	for i := 0; i < 2; i++ {
		mock.ExpectExec(`(?s)INSERT INTO languages.*ON CONFLICT \(name\) DO UPDATE`).
			WithArgs(sqlmock.AnyArg(), "English", "en").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	repo := NewReferenceRepository(db)
	require.NoError(t, repo.UpsertLanguage(context.Background(), "English", "en"))
	require.NoError(t, repo.UpsertLanguage(context.Background(), "English", "en"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMessageKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT INTO message_keys.*ON CONFLICT \(name\) DO UPDATE`).
		WithArgs("WELCOME_MESSAGE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewReferenceRepository(db)
	require.NoError(t, repo.UpsertMessageKey(context.Background(), "WELCOME_MESSAGE"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMessageKey_PropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO message_keys`).
		WithArgs("WELCOME_MESSAGE").
		WillReturnError(errors.New("relation does not exist"))

	repo := NewReferenceRepository(db)
	assert.Error(t, repo.UpsertMessageKey(context.Background(), "WELCOME_MESSAGE"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLanguages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.*FROM languages.*ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "name", "code"}).
			AddRow(3, "5f0d6c1a-7e2b-4b9e-8d53-1a2b3c4d5e6f", "English", "en").
			AddRow(1, "9c8b7a6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d", "German", "de").
			AddRow(2, "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d", "Polish", "pl"))

	repo := NewReferenceRepository(db)
	languages, err := repo.ListLanguages(context.Background())
	require.NoError(t, err)
	require.Len(t, languages, 3)
	assert.Equal(t, "English", languages[0].Name)
	assert.Equal(t, "en", languages[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessageKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.*FROM message_keys.*ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "WELCOME_MESSAGE"))

	repo := NewReferenceRepository(db)
	keys, err := repo.ListMessageKeys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "WELCOME_MESSAGE", keys[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
