package entities

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestQuoteValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Quote {
		return &Quote{
			Text:     "Stay hungry, stay foolish.",
			Author:   "Steve Jobs",
			Category: QuoteCategoryMotivation,
			Language: LanguageEnglish,
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid quote rejected: %v", err)
	}

	badRating := 6
	goodRating := 5

	cases := []struct {
		name   string
		mutate func(*Quote)
		valid  bool
	}{
		{"empty text", func(q *Quote) { q.Text = "" }, false},
		{"text too long", func(q *Quote) { q.Text = strings.Repeat("a", 1001) }, false},
		{"empty author", func(q *Quote) { q.Author = "" }, false},
		{"author too long", func(q *Quote) { q.Author = strings.Repeat("a", 101) }, false},
		{"bad category", func(q *Quote) { q.Category = "philosophy" }, false},
		{"bad language", func(q *Quote) { q.Language = "fr" }, false},
		{"rating out of range", func(q *Quote) { q.Rating = &badRating }, false},
		{"rating in range", func(q *Quote) { q.Rating = &goodRating }, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			quote := valid()
			tc.mutate(quote)
			err := quote.Validate()
			if tc.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestQuoteVisibility(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	system := &Quote{Text: "x", Author: "y"}
	if !system.VisibleTo(stranger) {
		t.Fatal("system quote should be visible to everyone")
	}

	private := &Quote{UserID: &owner, Text: "x", Author: "y"}
	if !private.VisibleTo(owner) {
		t.Fatal("owner should see own quote")
	}
	if private.VisibleTo(stranger) {
		t.Fatal("stranger should not see private quote")
	}

	public := &Quote{UserID: &owner, IsPublic: true, Text: "x", Author: "y"}
	if !public.VisibleTo(stranger) {
		t.Fatal("public quote should be visible to everyone")
	}
}

func TestCategoryValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Category {
		return &Category{
			Name:  "Work",
			Type:  CategoryTypeTask,
			Color: "#3b82f6",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Category)
		valid  bool
	}{
		{"empty name", func(c *Category) { c.Name = "" }, false},
		{"name too long", func(c *Category) { c.Name = strings.Repeat("a", 51) }, false},
		{"bad type", func(c *Category) { c.Type = "project" }, false},
		{"bad color", func(c *Category) { c.Color = "blue" }, false},
		{"short hex color", func(c *Category) { c.Color = "#fff" }, true},
		{"no color", func(c *Category) { c.Color = "" }, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			category := valid()
			tc.mutate(category)
			err := category.Validate()
			if tc.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
