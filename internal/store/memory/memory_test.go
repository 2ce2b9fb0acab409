package memory

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func TestTransactionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, core.Transaction{
		Description: "coffee", Amount: 3.20, Category: "Food", Date: "2025-01-01", Type: core.TypeExpense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create did not assign an id")
	}

	list, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v, want the created record", list)
	}

	if err := s.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTransaction(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	var want []string
	for _, d := range []string{"first", "second", "third"} {
		tx, _ := s.CreateTransaction(ctx, core.Transaction{Description: d})
		want = append(want, tx.ID)
	}

	list, _ := s.ListTransactions(ctx)
	for i, tx := range list {
		if tx.ID != want[i] {
			t.Fatalf("position %d = %s, want %s", i, tx.ID, want[i])
		}
	}
}

func TestUpdateCategory(t *testing.T) {
	s := New()
	ctx := context.Background()

	c, _ := s.CreateCategory(ctx, core.Category{Name: "Food", Color: core.DefaultColor})

	name := "Groceries"
	got, err := s.UpdateCategory(ctx, c.ID, store.CategoryPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Groceries" {
		t.Errorf("name = %s, want Groceries", got.Name)
	}
	if got.Color != core.DefaultColor {
		t.Errorf("color changed on a name-only patch: %+v", got.Color)
	}

	if _, err := s.UpdateCategory(ctx, "missing", store.CategoryPatch{Name: &name}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
}

func TestDeleteCategoryDoesNotCascade(t *testing.T) {
	s := New()
	ctx := context.Background()

	c, _ := s.CreateCategory(ctx, core.Category{Name: "Food"})
	s.CreateTransaction(ctx, core.Transaction{Description: "lunch", Category: "Food"})

	if err := s.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	txs, _ := s.ListTransactions(ctx)
	if len(txs) != 1 || txs[0].Category != "Food" {
		t.Errorf("transaction should keep its dangling category name: %+v", txs)
	}
}

func TestUpdateBudgetAmount(t *testing.T) {
	s := New()
	ctx := context.Background()

	b, _ := s.CreateBudget(ctx, core.Budget{Category: "Food", Amount: 100, Period: core.PeriodMonthly})

	got, err := s.UpdateBudgetAmount(ctx, b.ID, 250)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount != 250 || got.Category != "Food" || got.Period != core.PeriodMonthly {
		t.Errorf("got %+v, want only the amount changed", got)
	}

	if _, err := s.UpdateBudgetAmount(ctx, "missing", 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
}
