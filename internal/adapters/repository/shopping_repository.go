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

// ShoppingListRepositoryImpl implements the ShoppingListRepository interface
type ShoppingListRepositoryImpl struct {
	db *sqlx.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *sqlx.DB) ports.ShoppingListRepository {
	return &ShoppingListRepositoryImpl{db: db}
}

const shoppingListColumns = `id, user_id, name, description, due_date, status, items,
	created_at, updated_at`

var shoppingListSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"name":      "name",
	"status":    "status",
}

func (r *ShoppingListRepositoryImpl) Create(ctx context.Context, list *entities.ShoppingList) error {
	query := `
		INSERT INTO shopping_lists (id, user_id, name, description, due_date, status, items)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		list.ID, list.UserID, list.Name, list.Description, list.DueDate, list.Status,
		list.Items,
	).Scan(&list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create shopping list: %w", err)
	}

	return nil
}

func (r *ShoppingListRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingList, error) {
	query := fmt.Sprintf(`SELECT %s FROM shopping_lists WHERE id = $1`, shoppingListColumns)

	var list entities.ShoppingList
	err := r.db.GetContext(ctx, &list, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrShoppingListNotFound
		}
		return nil, fmt.Errorf("get shopping list by id: %w", err)
	}

	return &list, nil
}

func (r *ShoppingListRepositoryImpl) Update(ctx context.Context, list *entities.ShoppingList) error {
	query := `
		UPDATE shopping_lists
		SET name = $2, description = $3, due_date = $4, status = $5, items = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		list.ID, list.Name, list.Description, list.DueDate, list.Status, list.Items,
	).Scan(&list.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrShoppingListNotFound
		}
		return fmt.Errorf("update shopping list: %w", err)
	}

	return nil
}

func (r *ShoppingListRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrShoppingListNotFound
	}

	return nil
}

func (r *ShoppingListRepositoryImpl) List(ctx context.Context, filter ports.ShoppingListFilter) ([]*entities.ShoppingList, error) {
	where, args := buildShoppingListWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM shopping_lists WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		shoppingListColumns, where,
		sortColumn(shoppingListSortColumns, filter.SortBy, "created_at"), sortDirection(filter.SortOrder),
		filter.Limit, filter.Offset(),
	)

	lists := []*entities.ShoppingList{}
	err := r.db.SelectContext(ctx, &lists, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}

	return lists, nil
}

func (r *ShoppingListRepositoryImpl) Count(ctx context.Context, filter ports.ShoppingListFilter) (int64, error) {
	where, args := buildShoppingListWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM shopping_lists WHERE %s`, where)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count shopping lists: %w", err)
	}

	return count, nil
}

func buildShoppingListWhere(filter ports.ShoppingListFilter) (string, []interface{}) {
	b := newWhereBuilder()
	b.add("user_id = %s", filter.UserID)

	if filter.Status != nil {
		b.add("status = %s", *filter.Status)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		b.add("(name ILIKE %s OR description ILIKE %s)", pattern, pattern)
	}

	return b.where(), b.args
}
