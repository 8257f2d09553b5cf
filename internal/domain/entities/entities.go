package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrShoppingItemNotFound = errors.New("shopping item not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrSubtaskNotFound      = errors.New("subtask not found")
	ErrForbidden            = errors.New("resource belongs to another user")
	ErrDuplicate            = errors.New("resource already exists")
	ErrValidation           = errors.New("validation failed")
)

// Priority is shared by tasks and shopping items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// jsonValue / scanJSON back the JSONB columns. Nested task and shopping data
// is stored inline with the parent row so every write stays single-row.
func jsonValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func scanJSON(dest interface{}, src interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
}
