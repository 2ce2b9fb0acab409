// Package sqlite persists records in a single SQLite file, using the
// pure-Go driver so the binary stays cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, category, date, type FROM transactions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.Type); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, description, amount, category, date, type) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Description, t.Amount, t.Category, t.Date, string(t.Type))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "transactions", id)
}

func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color_class, color_name, color_value FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []core.Category{}
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color.Class, &c.Color.Name, &c.Color.Value); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	c.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color_class, color_name, color_value) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Color.Class, c.Color.Name, c.Color.Value)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, patch store.CategoryPatch) (core.Category, error) {
	current, err := s.getCategory(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Color != nil {
		current.Color = *patch.Color
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, color_class = ?, color_name = ?, color_value = ? WHERE id = ?`,
		current.Name, current.Color.Class, current.Color.Name, current.Color.Value, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return current, nil
}

func (s *Store) getCategory(ctx context.Context, id string) (core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color_class, color_name, color_value FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color.Class, &c.Color.Name, &c.Color.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, store.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	// Transactions keep their category name; the reference is allowed
	// to dangle.
	return s.deleteByID(ctx, "categories", id)
}

func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount, period FROM budgets ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Amount, &b.Period); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, category, amount, period) VALUES (?, ?, ?, ?)`,
		b.ID, b.Category, b.Amount, string(b.Period))
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

func (s *Store) UpdateBudgetAmount(ctx context.Context, id string, amount float64) (core.Budget, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE budgets SET amount = ? WHERE id = ?`, amount, id)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.Budget{}, store.ErrNotFound
	}

	var b core.Budget
	err = s.db.QueryRowContext(ctx,
		`SELECT id, category, amount, period FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.Category, &b.Amount, &b.Period)
	if err != nil {
		return core.Budget{}, fmt.Errorf("reload budget: %w", err)
	}
	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "budgets", id)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
