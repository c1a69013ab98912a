package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSQLRepository(db, dbx.DialectPostgres), mock, db
}

var fileColumns = []string{"id", "filename", "storage_key", "size", "tag", "created_at", "user_id", "username"}

func sampleFile() *models.FileItem {
	return &models.FileItem{
		FileName:   "report.pdf",
		StorageKey: "2026/10/15/abc_report.pdf",
		Size:       2048,
		Tag:        "Work",
		CreatedAt:  time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC),
		UserID:     1,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := sampleFile()
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+file_items\s*\(filename,\s*storage_key,\s*size,\s*tag,\s*created_at,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id`).
		WithArgs(f.FileName, f.StorageKey, f.Size, f.Tag, f.CreatedAt, f.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	got, err := repo.Create(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO file_items`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), sampleFile())
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO file_items`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleFile())
	assert.ErrorContains(t, err, "db error: db down")
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := sampleFile()
	mock.ExpectQuery(`(?s)FROM\s+file_items\s+f\s+JOIN\s+users\s+u.*WHERE\s+f\.id\s*=\s*\$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(fileColumns).
			AddRow(int64(9), f.FileName, f.StorageKey, f.Size, f.Tag, f.CreatedAt, f.UserID, "alice"))

	got, err := repo.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, f.StorageKey, got.StorageKey)
	assert.Equal(t, "alice", got.UserName)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM file_items`).WithArgs(int64(1)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListRecent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := sampleFile()
	mock.ExpectQuery(`(?s)ORDER\s+BY\s+f\.created_at\s+DESC,\s*f\.id\s+DESC\s+LIMIT\s+\$1`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(fileColumns).
			AddRow(int64(2), "b.txt", "k2", int64(10), "General", f.CreatedAt, int64(2), "bob").
			AddRow(int64(1), "a.txt", "k1", int64(20), "General", f.CreatedAt, int64(1), "alice"))

	got, err := repo.ListRecent(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b.txt", got[0].FileName)
	assert.Equal(t, int64(20), got[1].Size)
}

func TestListRecent_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM file_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := repo.ListRecent(context.Background(), 50)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM file_items WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec(`DELETE FROM file_items WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), common.ErrorNotFound)

	mock.ExpectExec(`DELETE FROM file_items`).WillReturnError(errors.New("boom"))
	assert.ErrorContains(t, repo.Delete(context.Background(), 5), "failed to delete file: boom")
}
