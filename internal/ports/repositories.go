package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/noteandmore/api/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.TaskStats, error)
}

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entities.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Quote, error)
	Update(ctx context.Context, quote *entities.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter QuoteFilter) ([]*entities.Quote, error)
	Count(ctx context.Context, filter QuoteFilter) (int64, error)
	Random(ctx context.Context, userID uuid.UUID, language *entities.Language) (*entities.Quote, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	GetByNameAndType(ctx context.Context, userID uuid.UUID, name string, ctype entities.CategoryType) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter CategoryFilter) ([]*entities.Category, error)
	Count(ctx context.Context, filter CategoryFilter) (int64, error)
	UpdateSortOrder(ctx context.Context, userID uuid.UUID, orders map[uuid.UUID]int) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// ShoppingListRepository defines the interface for shopping list data operations
type ShoppingListRepository interface {
	Create(ctx context.Context, list *entities.ShoppingList) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingList, error)
	Update(ctx context.Context, list *entities.ShoppingList) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ShoppingListFilter) ([]*entities.ShoppingList, error)
	Count(ctx context.Context, filter ShoppingListFilter) (int64, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AuthRepository defines the interface for refresh token storage
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent.
var ErrCacheMiss = cacheMissError{}

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

// ListParams carries the shared pagination and sorting query parameters.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps page and limit to their allowed ranges.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
}

// Offset converts page/limit into a row offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Filter types for repository queries. Optional fields are pointers; provided
// fields combine with logical AND. Search is a case-insensitive substring
// match over the title/description-equivalent fields of each resource.
type TaskFilter struct {
	UserID    uuid.UUID
	Search    *string
	Status    *entities.TaskStatus
	Priority  *entities.Priority
	Category  *string
	Tag       *string
	DueBefore *time.Time
	DueAfter  *time.Time
	ListParams
}

type QuoteFilter struct {
	UserID        uuid.UUID
	Search        *string
	Category      *entities.QuoteCategory
	Language      *entities.Language
	Tag           *string
	FavoritesOnly bool
	ListParams
}

type CategoryFilter struct {
	UserID uuid.UUID
	Type   *entities.CategoryType
	Search *string
	ListParams
}

type ShoppingListFilter struct {
	UserID uuid.UUID
	Status *entities.ShoppingListStatus
	Search *string
	ListParams
}

// Pagination is the metadata block attached to every list response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives pagination metadata from normalized params and a
// total row count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}
}

// Page is a single page of list results.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// RefreshToken represents a stored (hashed) refresh token
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
