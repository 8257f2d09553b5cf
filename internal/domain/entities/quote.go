package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type QuoteCategory string

const (
	QuoteCategoryMotivation  QuoteCategory = "motivation"
	QuoteCategoryInspiration QuoteCategory = "inspiration"
	QuoteCategoryWisdom      QuoteCategory = "wisdom"
	QuoteCategoryHumor       QuoteCategory = "humor"
	QuoteCategorySuccess     QuoteCategory = "success"
	QuoteCategoryLife        QuoteCategory = "life"
	QuoteCategoryLove        QuoteCategory = "love"
	QuoteCategoryOther       QuoteCategory = "other"
)

func (qc QuoteCategory) IsValid() bool {
	switch qc {
	case QuoteCategoryMotivation, QuoteCategoryInspiration, QuoteCategoryWisdom,
		QuoteCategoryHumor, QuoteCategorySuccess, QuoteCategoryLife,
		QuoteCategoryLove, QuoteCategoryOther:
		return true
	default:
		return false
	}
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHebrew  Language = "he"
)

func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageHebrew
}

const (
	maxQuoteTextLen   = 1000
	maxQuoteAuthorLen = 100
)

// Quote is a displayable quotation. A nil UserID marks a system-wide quote
// visible to everyone.
type Quote struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	UserID     *uuid.UUID     `json:"userId" db:"user_id"`
	Text       string         `json:"text" db:"text"`
	Author     string         `json:"author" db:"author"`
	Category   QuoteCategory  `json:"category" db:"category"`
	Language   Language       `json:"language" db:"language"`
	Tags       pq.StringArray `json:"tags" db:"tags"`
	IsFavorite bool           `json:"isFavorite" db:"is_favorite"`
	IsPublic   bool           `json:"isPublic" db:"is_public"`
	UsageCount int            `json:"usageCount" db:"usage_count"`
	Rating     *int           `json:"rating" db:"rating"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time      `json:"updatedAt" db:"updated_at"`
}

func (q *Quote) Validate() error {
	if q.Text == "" {
		return validationError("text is required")
	}
	if len(q.Text) > maxQuoteTextLen {
		return validationError("text must be at most %d characters", maxQuoteTextLen)
	}
	if q.Author == "" {
		return validationError("author is required")
	}
	if len(q.Author) > maxQuoteAuthorLen {
		return validationError("author must be at most %d characters", maxQuoteAuthorLen)
	}
	if !q.Category.IsValid() {
		return validationError("invalid quote category %q", q.Category)
	}
	if !q.Language.IsValid() {
		return validationError("language must be en or he")
	}
	if q.UsageCount < 0 {
		return validationError("usage count must not be negative")
	}
	if q.Rating != nil && (*q.Rating < 1 || *q.Rating > 5) {
		return validationError("rating must be between 1 and 5")
	}
	return nil
}

// VisibleTo reports whether a user may read this quote: own quotes, public
// quotes and system-wide quotes.
func (q *Quote) VisibleTo(userID uuid.UUID) bool {
	if q.UserID == nil || q.IsPublic {
		return true
	}
	return *q.UserID == userID
}
