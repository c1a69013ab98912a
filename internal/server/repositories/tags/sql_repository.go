package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"golang.org/x/text/cases"
)

// NameKey returns the case-folded form of name. Two tag names clash when
// their keys are equal.
func NameKey(name string) string {
	return cases.Fold().String(name)
}

// SQLRepository implements Repository over a dbx.DBTX. Name uniqueness is
// enforced by the tags_name_key_idx index; a violation is reported as
// common.ErrAlreadyExists.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	query := r.dialect.Rebind(
		`INSERT INTO tags (name, name_key, color_bg, color_text, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query, tag.Name, NameKey(tag.Name), tag.ColorBg, tag.ColorText, tag.CreatedAt).Scan(&tag.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q: %w", tag.Name, common.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tag, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	query := r.dialect.Rebind(
		`SELECT id, name, color_bg, color_text, created_at FROM tags
		 WHERE id = ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByName looks a tag up by name, ignoring case.
func (r *SQLRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	query := r.dialect.Rebind(
		`SELECT id, name, color_bg, color_text, created_at FROM tags
		 WHERE name_key = ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, NameKey(name)))
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Tag, error) {
	query := `SELECT id, name, color_bg, color_text, created_at FROM tags ORDER BY name_key, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.ColorBg, &tag.ColorText, &tag.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM tags WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
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

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Tag, error) {
	tag := &models.Tag{}
	if err := row.Scan(&tag.ID, &tag.Name, &tag.ColorBg, &tag.ColorText, &tag.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}
