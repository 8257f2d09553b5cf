package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/ports"
)

// CategoryRepositoryImpl implements the CategoryRepository interface
type CategoryRepositoryImpl struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) ports.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

const categoryColumns = `id, user_id, name, type, color, icon, sort_order, usage_count,
	created_at, updated_at`

var categorySortColumns = map[string]string{
	"createdAt":  "created_at",
	"name":       "name",
	"sortOrder":  "sort_order",
	"usageCount": "usage_count",
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entities.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, type, color, icon, sort_order, usage_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		category.ID, category.UserID, category.Name, category.Type, category.Color,
		category.Icon, category.SortOrder, category.UsageCount,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)

	var category entities.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) GetByNameAndType(ctx context.Context, userID uuid.UUID, name string, ctype entities.CategoryType) (*entities.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE user_id = $1 AND name = $2 AND type = $3`,
		categoryColumns)

	var category entities.Category
	err := r.db.GetContext(ctx, &category, query, userID, name, ctype)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by name and type: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *entities.Category) error {
	query := `
		UPDATE categories
		SET name = $2, type = $3, color = $4, icon = $5, sort_order = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		category.ID, category.Name, category.Type, category.Color, category.Icon,
		category.SortOrder,
	).Scan(&category.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrCategoryNotFound
		}
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, filter ports.CategoryFilter) ([]*entities.Category, error) {
	where, args := buildCategoryWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		categoryColumns, where,
		sortColumn(categorySortColumns, filter.SortBy, "sort_order"), sortDirection(filter.SortOrder),
		filter.Limit, filter.Offset(),
	)

	categories := []*entities.Category{}
	err := r.db.SelectContext(ctx, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepositoryImpl) Count(ctx context.Context, filter ports.CategoryFilter) (int64, error) {
	where, args := buildCategoryWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM categories WHERE %s`, where)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

func (r *CategoryRepositoryImpl) UpdateSortOrder(ctx context.Context, userID uuid.UUID, orders map[uuid.UUID]int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sort order update: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE categories SET sort_order = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`

	for id, order := range orders {
		if _, err := tx.ExecContext(ctx, query, id, userID, order); err != nil {
			return fmt.Errorf("update sort order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sort order update: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment category usage: %w", err)
	}
	return nil
}

func buildCategoryWhere(filter ports.CategoryFilter) (string, []interface{}) {
	b := newWhereBuilder()
	// Own categories plus system defaults.
	b.add("(user_id IS NULL OR user_id = %s)", filter.UserID)

	if filter.Type != nil {
		b.add("type = %s", *filter.Type)
	}
	if filter.Search != nil && *filter.Search != "" {
		b.add("name ILIKE %s", "%"+*filter.Search+"%")
	}

	return b.where(), b.args
}
