// Package store defines the persistence ports the HTTP layer and the
// query layer speak to. Two backends implement them: an in-memory map
// store and a SQLite store.
package store

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned by id-addressed operations when no record
// with that id exists.
var ErrNotFound = errors.New("record not found")

// CategoryPatch carries the updatable category fields. Nil means leave
// the field as stored.
type CategoryPatch struct {
	Name  *string
	Color *core.Color
}

type TransactionStore interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (core.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type BudgetStore interface {
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	UpdateBudgetAmount(ctx context.Context, id string, amount float64) (core.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
}

// RecordStore is the full persistence surface.
type RecordStore interface {
	TransactionStore
	CategoryStore
	BudgetStore
	Close() error
}
