package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// CategoryRepository provides database access for survey categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category and fills in the generated identifier.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	const query = `INSERT INTO categories (user_id, category_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING category_id`
	if err := r.db.QueryRowxContext(ctx, query,
		category.UserID, category.CategoryName, category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// FindByID returns a category by identifier.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	const query = `SELECT category_id, user_id, category_name, created_at, updated_at FROM categories WHERE category_id = $1 LIMIT 1`
	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return &category, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT category_id, user_id, category_name, created_at, updated_at FROM categories ORDER BY category_name ASC`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Update renames a category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	const query = `UPDATE categories SET category_name = :category_name, updated_at = :updated_at WHERE category_id = :category_id`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Surveys referencing it are detached first so the
// foreign key never blocks the delete.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `UPDATE surveys SET category_id = NULL WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("detach category surveys: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete category: %w", err)
	}
	return nil
}
