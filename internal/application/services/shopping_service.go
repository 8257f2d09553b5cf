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

// ShoppingService handles shopping list operations
type ShoppingService struct {
	listRepo ports.ShoppingListRepository
	logger   *logger.Logger
}

// NewShoppingService creates a new shopping service
func NewShoppingService(listRepo ports.ShoppingListRepository, logger *logger.Logger) *ShoppingService {
	return &ShoppingService{
		listRepo: listRepo,
		logger:   logger,
	}
}

// CreateShoppingListRequest is the payload for creating a shopping list
type CreateShoppingListRequest struct {
	Name        string                      `json:"name" validate:"required,max=100"`
	Description *string                     `json:"description"`
	DueDate     *time.Time                  `json:"dueDate"`
	Items       []ShoppingItemRequest       `json:"items" validate:"omitempty,dive"`
	Status      entities.ShoppingListStatus `json:"status" validate:"omitempty,oneof=active completed archived"`
}

// UpdateShoppingListRequest is the payload for partial shopping list updates
type UpdateShoppingListRequest struct {
	Name        *string                      `json:"name" validate:"omitempty,max=100"`
	Description *string                      `json:"description"`
	DueDate     *time.Time                   `json:"dueDate"`
	Status      *entities.ShoppingListStatus `json:"status" validate:"omitempty,oneof=active completed archived"`
}

// ShoppingItemRequest is the payload for a single list item
type ShoppingItemRequest struct {
	Name      string            `json:"name" validate:"required"`
	Quantity  int               `json:"quantity" validate:"omitempty,min=1"`
	Price     float64           `json:"price" validate:"omitempty,min=0"`
	Currency  string            `json:"currency"`
	Priority  entities.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed bool              `json:"completed"`
}

// UpdateShoppingItemRequest is the payload for partial item updates
type UpdateShoppingItemRequest struct {
	Name      *string            `json:"name"`
	Quantity  *int               `json:"quantity" validate:"omitempty,min=1"`
	Price     *float64           `json:"price" validate:"omitempty,min=0"`
	Currency  *string            `json:"currency"`
	Priority  *entities.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed *bool              `json:"completed"`
}

// CreateList creates a shopping list owned by the given user
func (s *ShoppingService) CreateList(ctx context.Context, userID uuid.UUID, req CreateShoppingListRequest) (*entities.ShoppingList, error) {
	list := &entities.ShoppingList{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Items:       buildItems(req.Items),
	}
	if list.Status == "" {
		list.Status = entities.ShoppingListStatusActive
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	s.logger.Info("Shopping list created", "list_id", list.ID, "user_id", userID)

	list.Derive()
	return list, nil
}

// GetList returns a list after an ownership check
func (s *ShoppingService) GetList(ctx context.Context, userID, listID uuid.UUID) (*entities.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrForbidden
	}

	list.Derive()
	return list, nil
}

// UpdateList applies a partial update to list-level fields
func (s *ShoppingService) UpdateList(ctx context.Context, userID, listID uuid.UUID, req UpdateShoppingListRequest) (*entities.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrForbidden
	}

	if req.Name != nil {
		list.Name = *req.Name
	}
	if req.Description != nil {
		list.Description = req.Description
	}
	if req.DueDate != nil {
		list.DueDate = req.DueDate
	}
	if req.Status != nil {
		list.Status = *req.Status
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}

	list.Derive()
	return list, nil
}

// DeleteList removes a list after an ownership check
func (s *ShoppingService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if list.UserID != userID {
		return entities.ErrForbidden
	}

	if err := s.listRepo.Delete(ctx, listID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	s.logger.Info("Shopping list deleted", "list_id", listID, "user_id", userID)
	return nil
}

// ListLists returns one page of the user's shopping lists
func (s *ShoppingService) ListLists(ctx context.Context, filter ports.ShoppingListFilter) (*ports.Page[*entities.ShoppingList], error) {
	filter.Normalize()

	lists, err := s.listRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	total, err := s.listRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count shopping lists: %w", err)
	}

	for _, list := range lists {
		list.Derive()
	}

	return &ports.Page[*entities.ShoppingList]{
		Data:       lists,
		Pagination: ports.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// AddItem appends an item to a list
func (s *ShoppingService) AddItem(ctx context.Context, userID, listID uuid.UUID, req ShoppingItemRequest) (*entities.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrForbidden
	}

	list.Items = append(list.Items, newItem(req))

	if err := list.Validate(); err != nil {
		return nil, err
	}

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	list.Derive()
	return list, nil
}

// UpdateItem applies a partial update to one item
func (s *ShoppingService) UpdateItem(ctx context.Context, userID, listID uuid.UUID, itemID string, req UpdateShoppingItemRequest) (*entities.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrForbidden
	}

	idx := -1
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entities.ErrShoppingItemNotFound
	}

	item := &list.Items[idx]
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Currency != nil {
		item.Currency = *req.Currency
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update shopping item: %w", err)
	}

	list.Derive()
	return list, nil
}

// RemoveItem deletes one item from a list
func (s *ShoppingService) RemoveItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*entities.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrForbidden
	}

	items := make(entities.ShoppingItems, 0, len(list.Items))
	found := false
	for _, item := range list.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, entities.ErrShoppingItemNotFound
	}
	list.Items = items

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to remove shopping item: %w", err)
	}

	list.Derive()
	return list, nil
}

func buildItems(reqs []ShoppingItemRequest) entities.ShoppingItems {
	if len(reqs) == 0 {
		return nil
	}
	items := make(entities.ShoppingItems, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, newItem(r))
	}
	return items
}

func newItem(req ShoppingItemRequest) entities.ShoppingItem {
	item := entities.ShoppingItem{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Currency:  req.Currency,
		Priority:  req.Priority,
		Completed: req.Completed,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.Priority == "" {
		item.Priority = entities.PriorityMedium
	}
	return item
}
