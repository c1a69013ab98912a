package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

// SQLRepository implements file metadata storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts a file record and fills in its ID. A duplicate storage key
// is reported as common.ErrAlreadyExists.
func (r *SQLRepository) Create(ctx context.Context, file *models.FileItem) (*models.FileItem, error) {
	query := r.dialect.Rebind(
		`INSERT INTO file_items (filename, storage_key, size, tag, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query,
		file.FileName, file.StorageKey, file.Size, file.Tag, file.CreatedAt, file.UserID).Scan(&file.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("storage key %q: %w", file.StorageKey, common.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// GetByID returns the file with its owner name, or common.ErrorNotFound.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.FileItem, error) {
	query := r.dialect.Rebind(
		`SELECT f.id, f.filename, f.storage_key, f.size, f.tag, f.created_at, f.user_id, u.username
		 FROM file_items f JOIN users u ON u.id = f.user_id
		 WHERE f.id = ?`)

	file := &models.FileItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&file.ID, &file.FileName, &file.StorageKey,
		&file.Size, &file.Tag, &file.CreatedAt, &file.UserID, &file.UserName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// ListRecent returns up to limit files, newest first.
func (r *SQLRepository) ListRecent(ctx context.Context, limit int) ([]*models.FileItem, error) {
	query := r.dialect.Rebind(
		`SELECT f.id, f.filename, f.storage_key, f.size, f.tag, f.created_at, f.user_id, u.username
		 FROM file_items f JOIN users u ON u.id = f.user_id
		 ORDER BY f.created_at DESC, f.id DESC
		 LIMIT ?`)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileItem
	for rows.Next() {
		var item models.FileItem
		if err := rows.Scan(&item.ID, &item.FileName, &item.StorageKey, &item.Size,
			&item.Tag, &item.CreatedAt, &item.UserID, &item.UserName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes the record. Exactly one row must be affected.
func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM file_items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
