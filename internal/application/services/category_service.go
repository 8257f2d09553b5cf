package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/infrastructure/logger"
	"github.com/noteandmore/api/internal/ports"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo ports.CategoryRepository
	logger       *logger.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo ports.CategoryRepository, logger *logger.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name      string                `json:"name" validate:"required,max=50"`
	Type      entities.CategoryType `json:"type" validate:"omitempty,oneof=task event contact shopping general"`
	Color     string                `json:"color" validate:"omitempty,hexcolor"`
	Icon      *string               `json:"icon"`
	SortOrder int                   `json:"sortOrder"`
}

// UpdateCategoryRequest is the payload for partial category updates
type UpdateCategoryRequest struct {
	Name      *string                `json:"name" validate:"omitempty,max=50"`
	Type      *entities.CategoryType `json:"type" validate:"omitempty,oneof=task event contact shopping general"`
	Color     *string                `json:"color" validate:"omitempty,hexcolor"`
	Icon      *string                `json:"icon"`
	SortOrder *int                   `json:"sortOrder"`
}

// ReorderRequest carries the new sort order for a set of categories
type ReorderRequest struct {
	Orders []ReorderItem `json:"orders" validate:"required,min=1,dive"`
}

type ReorderItem struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	SortOrder int       `json:"sortOrder"`
}

// CreateCategory creates a category; (owner, name, type) must be unique
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*entities.Category, error) {
	category := &entities.Category{
		ID:        uuid.New(),
		UserID:    &userID,
		Name:      req.Name,
		Type:      req.Type,
		Color:     req.Color,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if category.Type == "" {
		category.Type = entities.CategoryTypeGeneral
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByNameAndType(ctx, userID, category.Name, category.Type)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: category %q of type %s", entities.ErrDuplicate, category.Name, category.Type)
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category created", "category_id", category.ID, "user_id", userID)
	return category, nil
}

// GetCategory returns a category visible to the user
func (s *CategoryService) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*entities.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != nil && *category.UserID != userID {
		return nil, entities.ErrForbidden
	}
	return category, nil
}

// UpdateCategory applies a partial update. System defaults (nil owner) are
// read-only.
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req UpdateCategoryRequest) (*entities.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID == nil || *category.UserID != userID {
		return nil, entities.ErrForbidden
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = *req.Type
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes an owned category
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID == nil || *category.UserID != userID {
		return entities.ErrForbidden
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("Category deleted", "category_id", categoryID, "user_id", userID)
	return nil
}

// ListCategories returns one page of categories visible to the user
func (s *CategoryService) ListCategories(ctx context.Context, filter ports.CategoryFilter) (*ports.Page[*entities.Category], error) {
	filter.Normalize()
	if filter.SortOrder == "desc" && filter.SortBy == "" {
		// Categories default to manual ordering, ascending.
		filter.SortOrder = "asc"
	}

	categories, err := s.categoryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	return &ports.Page[*entities.Category]{
		Data:       categories,
		Pagination: ports.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Reorder updates the sort order of the user's categories in one shot
func (s *CategoryService) Reorder(ctx context.Context, userID uuid.UUID, req ReorderRequest) error {
	orders := make(map[uuid.UUID]int, len(req.Orders))
	for _, item := range req.Orders {
		orders[item.ID] = item.SortOrder
	}

	if err := s.categoryRepo.UpdateSortOrder(ctx, userID, orders); err != nil {
		return fmt.Errorf("failed to reorder categories: %w", err)
	}

	return nil
}
