package entities

import (
	"errors"
	"strings"
	"testing"
)

func TestShoppingListTotal(t *testing.T) {
	t.Parallel()

	list := &ShoppingList{
		Name:   "Groceries",
		Status: ShoppingListStatusActive,
		Items: ShoppingItems{
			{ID: "1", Name: "Milk", Quantity: 3, Price: 2},
			{ID: "2", Name: "Coffee", Quantity: 1, Price: 5},
		},
	}

	if got := list.Total(); got != 11 {
		t.Fatalf("total = %v, want 11", got)
	}

	list.Derive()
	if list.TotalPrice != 11 {
		t.Fatalf("totalPrice = %v, want 11", list.TotalPrice)
	}
}

func TestShoppingListTotalEmpty(t *testing.T) {
	t.Parallel()

	list := &ShoppingList{Name: "Empty", Status: ShoppingListStatusActive}
	if got := list.Total(); got != 0 {
		t.Fatalf("total = %v, want 0", got)
	}
}

func TestShoppingListValidate(t *testing.T) {
	t.Parallel()

	valid := func() *ShoppingList {
		return &ShoppingList{
			Name:   "Groceries",
			Status: ShoppingListStatusActive,
			Items: ShoppingItems{
				{ID: "1", Name: "Milk", Quantity: 1, Price: 2.5, Priority: PriorityLow},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid list rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*ShoppingList)
	}{
		{"empty name", func(l *ShoppingList) { l.Name = "" }},
		{"name too long", func(l *ShoppingList) { l.Name = strings.Repeat("a", 101) }},
		{"bad status", func(l *ShoppingList) { l.Status = "paused" }},
		{"item without name", func(l *ShoppingList) { l.Items[0].Name = "" }},
		{"zero quantity", func(l *ShoppingList) { l.Items[0].Quantity = 0 }},
		{"negative price", func(l *ShoppingList) { l.Items[0].Price = -1 }},
		{"bad item priority", func(l *ShoppingList) { l.Items[0].Priority = "urgent" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			list := valid()
			tc.mutate(list)
			err := list.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
