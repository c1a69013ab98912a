package clipboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, item *models.ClipboardItem) (*models.ClipboardItem, error) {
	query := r.dialect.Rebind(
		`INSERT INTO clipboard_items (content, tag, created_at, user_id)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query, item.Content, item.Tag, item.CreatedAt, item.UserID).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.ClipboardItem, error) {
	query := r.dialect.Rebind(
		`SELECT c.id, c.content, c.tag, c.created_at, c.user_id, u.username
		 FROM clipboard_items c JOIN users u ON u.id = c.user_id
		 WHERE c.id = ?`)

	item := &models.ClipboardItem{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.Content, &item.Tag, &item.CreatedAt, &item.UserID, &item.UserName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *SQLRepository) ListRecent(ctx context.Context, limit int) ([]*models.ClipboardItem, error) {
	query := r.dialect.Rebind(
		`SELECT c.id, c.content, c.tag, c.created_at, c.user_id, u.username
		 FROM clipboard_items c JOIN users u ON u.id = c.user_id
		 ORDER BY c.created_at DESC, c.id DESC
		 LIMIT ?`)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select clipboard items: %w", err)
	}
	defer rows.Close()

	var result []*models.ClipboardItem
	for rows.Next() {
		var item models.ClipboardItem
		if err := rows.Scan(&item.ID, &item.Content, &item.Tag, &item.CreatedAt, &item.UserID, &item.UserName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM clipboard_items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete clipboard item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
