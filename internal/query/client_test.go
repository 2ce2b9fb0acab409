package query

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(discard{}, nil)})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// failingStore wraps a real store and fails listings on demand.
type failingStore struct {
	store.RecordStore

	mu   sync.Mutex
	fail bool
}

func (f *failingStore) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

func (f *failingStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return nil, errors.New("connection refused")
	}
	return f.RecordStore.ListTransactions(ctx)
}

func TestFetch(t *testing.T) {
	mem := memory.New()
	ctx := context.Background()
	mem.CreateTransaction(ctx, core.Transaction{Description: "coffee", Amount: 3, Category: "Food", Date: "2025-01-01", Type: "EXPENSE"})
	mem.CreateCategory(ctx, core.Category{Name: "Food"})
	mem.CreateBudget(ctx, core.Budget{Category: "Food", Amount: 100, Period: core.PeriodMonthly})

	c := NewClient(mem, testLogger())

	snap, err := c.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.Stale {
		t.Error("fresh fetch marked stale")
	}
	if len(snap.Transactions) != 1 || len(snap.Categories) != 1 || len(snap.Budgets) != 1 {
		t.Fatalf("snapshot sizes = %d/%d/%d", len(snap.Transactions), len(snap.Categories), len(snap.Budgets))
	}
	if snap.Transactions[0].Type != core.TypeExpense {
		t.Errorf("type = %s, want normalized lowercase", snap.Transactions[0].Type)
	}
}

func TestFetch_ServesLastKnownGoodOnFailure(t *testing.T) {
	mem := memory.New()
	ctx := context.Background()
	mem.CreateTransaction(ctx, core.Transaction{Description: "coffee", Amount: 3})

	fs := &failingStore{RecordStore: mem}
	c := NewClient(fs, testLogger())

	if _, err := c.Fetch(ctx); err != nil {
		t.Fatalf("priming fetch: %v", err)
	}

	fs.setFail(true)
	snap, err := c.Fetch(ctx)
	if err != nil {
		t.Fatalf("degraded fetch should not error: %v", err)
	}
	if !snap.Stale {
		t.Error("degraded snapshot not marked stale")
	}
	if len(snap.Transactions) != 1 {
		t.Errorf("got %d cached transactions, want 1", len(snap.Transactions))
	}
}

func TestFetch_ColdFailureSurfacesTransportError(t *testing.T) {
	fs := &failingStore{RecordStore: memory.New(), fail: true}
	c := NewClient(fs, testLogger())

	_, err := c.Fetch(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if terr.Collection != CollectionTransaction {
		t.Errorf("collection = %s, want transaction", terr.Collection)
	}
}

func TestInvalidate(t *testing.T) {
	mem := memory.New()
	ctx := context.Background()
	fs := &failingStore{RecordStore: mem}
	c := NewClient(fs, testLogger())

	if _, err := c.Fetch(ctx); err != nil {
		t.Fatalf("priming fetch: %v", err)
	}

	c.Invalidate(CollectionTransaction)
	fs.setFail(true)

	// The transaction copy is gone, so there is no complete fallback.
	if _, err := c.Fetch(ctx); err == nil {
		t.Error("fetch after invalidation should surface the store error")
	}
}
