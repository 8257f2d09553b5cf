package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/infrastructure/logger"
)

func newShoppingSvc() (*ShoppingService, *fakeShoppingRepo) {
	repo := newFakeShoppingRepo()
	return NewShoppingService(repo, logger.NewNop()), repo
}

func TestCreateListDefaultsAndTotal(t *testing.T) {
	t.Parallel()

	svc, _ := newShoppingSvc()
	userID := uuid.New()

	list, err := svc.CreateList(context.Background(), userID, CreateShoppingListRequest{
		Name: "Groceries",
		Items: []ShoppingItemRequest{
			{Name: "Milk", Quantity: 3, Price: 2},
			{Name: "Coffee", Price: 5},
		},
	})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if list.Status != entities.ShoppingListStatusActive {
		t.Fatalf("status = %s, want active", list.Status)
	}
	if list.TotalPrice != 11 {
		t.Fatalf("totalPrice = %v, want 11", list.TotalPrice)
	}
	// Omitted quantity defaults to 1, priority to medium, and every item gets
	// a generated ID.
	coffee := list.Items[1]
	if coffee.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", coffee.Quantity)
	}
	if coffee.Priority != entities.PriorityMedium {
		t.Fatalf("priority = %s, want medium", coffee.Priority)
	}
	if coffee.ID == "" {
		t.Fatal("item ID not generated")
	}
}

func TestAddUpdateRemoveItem(t *testing.T) {
	t.Parallel()

	svc, _ := newShoppingSvc()
	userID := uuid.New()

	list, err := svc.CreateList(context.Background(), userID, CreateShoppingListRequest{Name: "Hardware"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	list, err = svc.AddItem(context.Background(), userID, list.ID, ShoppingItemRequest{
		Name: "Screws", Quantity: 2, Price: 4.5,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(list.Items))
	}
	if list.TotalPrice != 9 {
		t.Fatalf("totalPrice = %v, want 9", list.TotalPrice)
	}

	itemID := list.Items[0].ID
	qty := 4
	done := true
	list, err = svc.UpdateItem(context.Background(), userID, list.ID, itemID, UpdateShoppingItemRequest{
		Quantity:  &qty,
		Completed: &done,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if list.Items[0].Quantity != 4 || !list.Items[0].Completed {
		t.Fatalf("item after update = %+v", list.Items[0])
	}
	if list.TotalPrice != 18 {
		t.Fatalf("totalPrice = %v, want 18", list.TotalPrice)
	}

	if _, err := svc.UpdateItem(context.Background(), userID, list.ID, "missing", UpdateShoppingItemRequest{Quantity: &qty}); !errors.Is(err, entities.ErrShoppingItemNotFound) {
		t.Fatalf("update missing item: got %v, want ErrShoppingItemNotFound", err)
	}

	list, err = svc.RemoveItem(context.Background(), userID, list.ID, itemID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("items after remove = %d, want 0", len(list.Items))
	}
	if list.TotalPrice != 0 {
		t.Fatalf("totalPrice = %v, want 0", list.TotalPrice)
	}

	if _, err := svc.RemoveItem(context.Background(), userID, list.ID, itemID); !errors.Is(err, entities.ErrShoppingItemNotFound) {
		t.Fatalf("remove twice: got %v, want ErrShoppingItemNotFound", err)
	}
}

func TestShoppingListOwnership(t *testing.T) {
	t.Parallel()

	svc, _ := newShoppingSvc()
	owner := uuid.New()
	stranger := uuid.New()

	list, err := svc.CreateList(context.Background(), owner, CreateShoppingListRequest{Name: "Mine"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if _, err := svc.GetList(context.Background(), stranger, list.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Fatalf("stranger GetList: got %v, want ErrForbidden", err)
	}
	if _, err := svc.AddItem(context.Background(), stranger, list.ID, ShoppingItemRequest{Name: "Sneaky"}); !errors.Is(err, entities.ErrForbidden) {
		t.Fatalf("stranger AddItem: got %v, want ErrForbidden", err)
	}
	if err := svc.DeleteList(context.Background(), stranger, list.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Fatalf("stranger DeleteList: got %v, want ErrForbidden", err)
	}
}

func TestUpdateListStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newShoppingSvc()
	userID := uuid.New()

	list, err := svc.CreateList(context.Background(), userID, CreateShoppingListRequest{Name: "Weekend"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	status := entities.ShoppingListStatusArchived
	updated, err := svc.UpdateList(context.Background(), userID, list.ID, UpdateShoppingListRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateList: %v", err)
	}
	if updated.Status != entities.ShoppingListStatusArchived {
		t.Fatalf("status = %s, want archived", updated.Status)
	}
}
