package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/influence-roster/internal/logger"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestProfileRepo(t *testing.T, postgres bool) (*profileRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	l := logger.Nop()
	db := newSQLiteDB(conn, l)
	if postgres {
		db = newPostgresDB(conn, l)
	}

	repo := NewProfileRepository(db, l).(*profileRepository)
	repo.delays = []time.Duration{time.Millisecond, time.Millisecond}
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestProfileRepository_LoadNoRows(t *testing.T) {
	repo, mock := newTestProfileRepo(t, false)

	mock.ExpectQuery("SELECT body FROM roster_documents WHERE name = ?").
		WithArgs(profilesDocument).
		WillReturnError(sql.ErrNoRows)

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_LoadDocument(t *testing.T) {
	repo, mock := newTestProfileRepo(t, true)

	rows := sqlmock.NewRows([]string{"body"}).
		AddRow(`[{"name":"Vell","biases":[{"text":"Gold","revealed":true}]}]`)
	mock.ExpectQuery(`SELECT body FROM roster_documents WHERE name = \$1`).
		WithArgs(profilesDocument).
		WillReturnRows(rows)

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Vell", records[0].Name)
	require.Len(t, records[0].Biases, 1)
	assert.True(t, records[0].Biases[0].Revealed)
}

func TestProfileRepository_LoadQueryError(t *testing.T) {
	repo, mock := newTestProfileRepo(t, false)

	mock.ExpectQuery("SELECT body").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestProfileRepository_SaveUpsert(t *testing.T) {
	repo, mock := newTestProfileRepo(t, false)

	mock.ExpectExec("INSERT INTO roster_documents \\(name,body,updated_at\\) VALUES \\(\\?,\\?,\\?\\) ON CONFLICT \\(name\\) DO UPDATE").
		WithArgs(profilesDocument, sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), sampleRecords()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SaveRetriesRetryable(t *testing.T) {
	repo, mock := newTestProfileRepo(t, true)

	mock.ExpectExec("INSERT INTO roster_documents").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("INSERT INTO roster_documents").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), sampleRecords()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SaveGivesUpAfterRetries(t *testing.T) {
	repo, mock := newTestProfileRepo(t, true)

	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO roster_documents").
			WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	err := repo.Save(context.Background(), sampleRecords())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SaveNonRetryable(t *testing.T) {
	repo, mock := newTestProfileRepo(t, true)

	mock.ExpectExec("INSERT INTO roster_documents").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	err := repo.Save(context.Background(), sampleRecords())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ExportEmpty(t *testing.T) {
	repo, mock := newTestProfileRepo(t, false)
	mock.ExpectQuery("SELECT body").WillReturnError(sql.ErrNoRows)

	raw, err := repo.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestProfileRepository_Close(t *testing.T) {
	repo, mock := newTestProfileRepo(t, false)
	mock.ExpectClose()

	require.NoError(t, repo.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
