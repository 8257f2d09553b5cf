package entities

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type ShoppingListStatus string

const (
	ShoppingListStatusActive    ShoppingListStatus = "active"
	ShoppingListStatusCompleted ShoppingListStatus = "completed"
	ShoppingListStatusArchived  ShoppingListStatus = "archived"
)

func (s ShoppingListStatus) IsValid() bool {
	switch s {
	case ShoppingListStatusActive, ShoppingListStatusCompleted, ShoppingListStatusArchived:
		return true
	default:
		return false
	}
}

const maxShoppingListNameLen = 100

// ShoppingItem is an embedded line item of a shopping list.
type ShoppingItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Currency  string   `json:"currency"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

type ShoppingItems []ShoppingItem

func (s ShoppingItems) Value() (driver.Value, error) { return jsonValue(s) }
func (s *ShoppingItems) Scan(src interface{}) error  { return scanJSON(s, src) }

// ShoppingList is a user-owned list with embedded items, stored as one row.
type ShoppingList struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	UserID      uuid.UUID          `json:"userId" db:"user_id"`
	Name        string             `json:"name" db:"name"`
	Description *string            `json:"description" db:"description"`
	DueDate     *time.Time         `json:"dueDate" db:"due_date"`
	Status      ShoppingListStatus `json:"status" db:"status"`
	Items       ShoppingItems      `json:"items" db:"items"`
	CreatedAt   time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" db:"updated_at"`

	// Computed on read, never persisted.
	TotalPrice float64 `json:"totalPrice" db:"-"`
}

func (l *ShoppingList) Validate() error {
	if l.Name == "" {
		return validationError("name is required")
	}
	if len(l.Name) > maxShoppingListNameLen {
		return validationError("name must be at most %d characters", maxShoppingListNameLen)
	}
	if !l.Status.IsValid() {
		return validationError("status must be one of active, completed, archived")
	}
	for _, item := range l.Items {
		if item.Name == "" {
			return validationError("item name is required")
		}
		if item.Quantity < 1 {
			return validationError("item quantity must be at least 1")
		}
		if item.Price < 0 {
			return validationError("item price must not be negative")
		}
		if item.Priority != "" && !item.Priority.IsValid() {
			return validationError("item priority must be one of low, medium, high")
		}
	}
	return nil
}

// Total sums price times quantity over all items.
func (l *ShoppingList) Total() float64 {
	var total float64
	for _, item := range l.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Derive fills the computed response fields.
func (l *ShoppingList) Derive() {
	l.TotalPrice = l.Total()
}
