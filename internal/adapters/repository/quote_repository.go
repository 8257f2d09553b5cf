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

// QuoteRepositoryImpl implements the QuoteRepository interface
type QuoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *sqlx.DB) ports.QuoteRepository {
	return &QuoteRepositoryImpl{db: db}
}

const quoteColumns = `id, user_id, text, author, category, language, tags, is_favorite,
	is_public, usage_count, rating, created_at, updated_at`

var quoteSortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"author":     "author",
	"category":   "category",
	"usageCount": "usage_count",
	"rating":     "rating",
}

func (r *QuoteRepositoryImpl) Create(ctx context.Context, quote *entities.Quote) error {
	query := `
		INSERT INTO quotes (id, user_id, text, author, category, language, tags,
			is_favorite, is_public, usage_count, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		quote.ID, quote.UserID, quote.Text, quote.Author, quote.Category, quote.Language,
		quote.Tags, quote.IsFavorite, quote.IsPublic, quote.UsageCount, quote.Rating,
	).Scan(&quote.CreatedAt, &quote.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}

	return nil
}

func (r *QuoteRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Quote, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE id = $1`, quoteColumns)

	var quote entities.Quote
	err := r.db.GetContext(ctx, &quote, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("get quote by id: %w", err)
	}

	return &quote, nil
}

func (r *QuoteRepositoryImpl) Update(ctx context.Context, quote *entities.Quote) error {
	query := `
		UPDATE quotes
		SET text = $2, author = $3, category = $4, language = $5, tags = $6,
			is_favorite = $7, is_public = $8, rating = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		quote.ID, quote.Text, quote.Author, quote.Category, quote.Language,
		quote.Tags, quote.IsFavorite, quote.IsPublic, quote.Rating,
	).Scan(&quote.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrQuoteNotFound
		}
		return fmt.Errorf("update quote: %w", err)
	}

	return nil
}

func (r *QuoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrQuoteNotFound
	}

	return nil
}

func (r *QuoteRepositoryImpl) List(ctx context.Context, filter ports.QuoteFilter) ([]*entities.Quote, error) {
	where, args := buildQuoteWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		quoteColumns, where,
		sortColumn(quoteSortColumns, filter.SortBy, "created_at"), sortDirection(filter.SortOrder),
		filter.Limit, filter.Offset(),
	)

	quotes := []*entities.Quote{}
	err := r.db.SelectContext(ctx, &quotes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	return quotes, nil
}

func (r *QuoteRepositoryImpl) Count(ctx context.Context, filter ports.QuoteFilter) (int64, error) {
	where, args := buildQuoteWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM quotes WHERE %s`, where)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}

	return count, nil
}

func (r *QuoteRepositoryImpl) Random(ctx context.Context, userID uuid.UUID, language *entities.Language) (*entities.Quote, error) {
	b := newWhereBuilder()
	b.add("(user_id IS NULL OR user_id = %s OR is_public)", userID)
	if language != nil {
		b.add("language = %s", *language)
	}

	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE %s ORDER BY RANDOM() LIMIT 1`,
		quoteColumns, b.where())

	var quote entities.Quote
	err := r.db.GetContext(ctx, &quote, query, b.args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("random quote: %w", err)
	}

	return &quote, nil
}

func (r *QuoteRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment quote usage: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrQuoteNotFound
	}

	return nil
}

func buildQuoteWhere(filter ports.QuoteFilter) (string, []interface{}) {
	b := newWhereBuilder()
	// Own quotes plus system-wide and public ones.
	b.add("(user_id IS NULL OR user_id = %s OR is_public)", filter.UserID)

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		b.add("(text ILIKE %s OR author ILIKE %s)", pattern, pattern)
	}
	if filter.Category != nil {
		b.add("category = %s", *filter.Category)
	}
	if filter.Language != nil {
		b.add("language = %s", *filter.Language)
	}
	if filter.Tag != nil {
		b.add("%s = ANY(tags)", *filter.Tag)
	}
	if filter.FavoritesOnly {
		b.clauses = append(b.clauses, "is_favorite")
	}

	return b.where(), b.args
}
