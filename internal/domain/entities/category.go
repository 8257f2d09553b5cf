package entities

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeTask     CategoryType = "task"
	CategoryTypeEvent    CategoryType = "event"
	CategoryTypeContact  CategoryType = "contact"
	CategoryTypeShopping CategoryType = "shopping"
	CategoryTypeGeneral  CategoryType = "general"
)

func (ct CategoryType) IsValid() bool {
	switch ct {
	case CategoryTypeTask, CategoryTypeEvent, CategoryTypeContact, CategoryTypeShopping, CategoryTypeGeneral:
		return true
	default:
		return false
	}
}

const maxCategoryNameLen = 50

// hexColorRe accepts #RGB and #RRGGBB.
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Category groups tasks, events, contacts or shopping lists. A nil UserID
// marks a system default available to every user.
type Category struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	UserID     *uuid.UUID   `json:"userId" db:"user_id"`
	Name       string       `json:"name" db:"name"`
	Type       CategoryType `json:"type" db:"type"`
	Color      string       `json:"color" db:"color"`
	Icon       *string      `json:"icon" db:"icon"`
	SortOrder  int          `json:"sortOrder" db:"sort_order"`
	UsageCount int          `json:"usageCount" db:"usage_count"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return validationError("name is required")
	}
	if len(c.Name) > maxCategoryNameLen {
		return validationError("name must be at most %d characters", maxCategoryNameLen)
	}
	if !c.Type.IsValid() {
		return validationError("invalid category type %q", c.Type)
	}
	if c.Color != "" && !hexColorRe.MatchString(c.Color) {
		return validationError("color must be a hex color like #3b82f6")
	}
	return nil
}
