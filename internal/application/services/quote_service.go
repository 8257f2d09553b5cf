package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/infrastructure/logger"
	"github.com/noteandmore/api/internal/ports"
)

const randomQuoteCacheTTL = time.Hour

// QuoteService handles quote operations
type QuoteService struct {
	quoteRepo ports.QuoteRepository
	cache     ports.CacheRepository
	logger    *logger.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(quoteRepo ports.QuoteRepository, cache ports.CacheRepository, logger *logger.Logger) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		cache:     cache,
		logger:    logger,
	}
}

// CreateQuoteRequest is the payload for creating a quote
type CreateQuoteRequest struct {
	Text     string                 `json:"text" validate:"required,max=1000"`
	Author   string                 `json:"author" validate:"required,max=100"`
	Category entities.QuoteCategory `json:"category" validate:"omitempty,oneof=motivation inspiration wisdom humor success life love other"`
	Language entities.Language      `json:"language" validate:"omitempty,oneof=en he"`
	Tags     []string               `json:"tags"`
	IsPublic bool                   `json:"isPublic"`
	Rating   *int                   `json:"rating" validate:"omitempty,min=1,max=5"`
}

// UpdateQuoteRequest is the payload for partial quote updates
type UpdateQuoteRequest struct {
	Text     *string                 `json:"text" validate:"omitempty,max=1000"`
	Author   *string                 `json:"author" validate:"omitempty,max=100"`
	Category *entities.QuoteCategory `json:"category" validate:"omitempty,oneof=motivation inspiration wisdom humor success life love other"`
	Language *entities.Language      `json:"language" validate:"omitempty,oneof=en he"`
	Tags     *[]string               `json:"tags"`
	IsPublic *bool                   `json:"isPublic"`
	Rating   *int                    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// CreateQuote creates a quote owned by the given user
func (s *QuoteService) CreateQuote(ctx context.Context, userID uuid.UUID, req CreateQuoteRequest) (*entities.Quote, error) {
	quote := &entities.Quote{
		ID:       uuid.New(),
		UserID:   &userID,
		Text:     req.Text,
		Author:   req.Author,
		Category: req.Category,
		Language: req.Language,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
		Rating:   req.Rating,
	}
	if quote.Category == "" {
		quote.Category = entities.QuoteCategoryOther
	}
	if quote.Language == "" {
		quote.Language = entities.LanguageEnglish
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.logger.Info("Quote created", "quote_id", quote.ID, "user_id", userID)
	return quote, nil
}

// GetQuote returns a quote the user is allowed to see
func (s *QuoteService) GetQuote(ctx context.Context, userID, quoteID uuid.UUID) (*entities.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.VisibleTo(userID) {
		return nil, entities.ErrForbidden
	}
	return quote, nil
}

// UpdateQuote applies a partial update. Only the owner may edit; system-wide
// quotes are read-only through the API.
func (s *QuoteService) UpdateQuote(ctx context.Context, userID, quoteID uuid.UUID, req UpdateQuoteRequest) (*entities.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.UserID == nil || *quote.UserID != userID {
		return nil, entities.ErrForbidden
	}

	if req.Text != nil {
		quote.Text = *req.Text
	}
	if req.Author != nil {
		quote.Author = *req.Author
	}
	if req.Category != nil {
		quote.Category = *req.Category
	}
	if req.Language != nil {
		quote.Language = *req.Language
	}
	if req.Tags != nil {
		quote.Tags = *req.Tags
	}
	if req.IsPublic != nil {
		quote.IsPublic = *req.IsPublic
	}
	if req.Rating != nil {
		quote.Rating = req.Rating
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	return quote, nil
}

// DeleteQuote removes an owned quote
func (s *QuoteService) DeleteQuote(ctx context.Context, userID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if quote.UserID == nil || *quote.UserID != userID {
		return entities.ErrForbidden
	}

	if err := s.quoteRepo.Delete(ctx, quoteID); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	s.logger.Info("Quote deleted", "quote_id", quoteID, "user_id", userID)
	return nil
}

// ListQuotes returns one page of quotes visible to the user
func (s *QuoteService) ListQuotes(ctx context.Context, filter ports.QuoteFilter) (*ports.Page[*entities.Quote], error) {
	filter.Normalize()

	quotes, err := s.quoteRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	total, err := s.quoteRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	return &ports.Page[*entities.Quote]{
		Data:       quotes,
		Pagination: ports.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// RandomQuote returns a random visible quote. The pick is cached per user for
// an hour so repeated dashboard loads show the same quote.
func (s *QuoteService) RandomQuote(ctx context.Context, userID uuid.UUID, language *entities.Language) (*entities.Quote, error) {
	key := randomQuoteCacheKey(userID, language)

	if s.cache != nil {
		var cached entities.Quote
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if err != ports.ErrCacheMiss {
			s.logger.Warn("Quote cache read failed", "error", err, "user_id", userID)
		}
	}

	quote, err := s.quoteRepo.Random(ctx, userID, language)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, quote, randomQuoteCacheTTL); err != nil {
			s.logger.Warn("Quote cache write failed", "error", err, "user_id", userID)
		}
	}

	return quote, nil
}

// UseQuote increments a quote's usage counter
func (s *QuoteService) UseQuote(ctx context.Context, userID, quoteID uuid.UUID) (*entities.Quote, error) {
	quote, err := s.GetQuote(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.IncrementUsage(ctx, quoteID); err != nil {
		return nil, fmt.Errorf("failed to increment quote usage: %w", err)
	}

	quote.UsageCount++
	return quote, nil
}

// ToggleFavorite flips the favorite flag on an owned quote
func (s *QuoteService) ToggleFavorite(ctx context.Context, userID, quoteID uuid.UUID) (*entities.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.UserID == nil || *quote.UserID != userID {
		return nil, entities.ErrForbidden
	}

	quote.IsFavorite = !quote.IsFavorite

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return quote, nil
}

func randomQuoteCacheKey(userID uuid.UUID, language *entities.Language) string {
	lang := "any"
	if language != nil {
		lang = string(*language)
	}
	return "quote:random:" + userID.String() + ":" + lang
}
