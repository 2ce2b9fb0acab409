// Package query assembles immutable snapshots of all three collections
// for the computation core. Collections are fetched concurrently; when
// the store fails mid-fetch the last successfully fetched copy of each
// collection is served instead, so a flaky backend degrades to stale
// reads rather than errors.
package query

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// Collection names used as cache keys and in change events.
const (
	CollectionTransaction = "transaction"
	CollectionCategory    = "category"
	CollectionBudget      = "budget"
)

// TransportError reports which collection's fetch failed.
type TransportError struct {
	Collection string
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Collection, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Snapshot is one consistent read of the store. The core never sees
// partial updates; it recomputes from a whole snapshot each time.
type Snapshot struct {
	Transactions []core.Transaction
	Categories   []core.Category
	Budgets      []core.Budget
	Stale        bool
}

type Client struct {
	store  store.RecordStore
	logger *log.Logger

	transactions *cache.LRUCache[[]core.Transaction]
	categories   *cache.LRUCache[[]core.Category]
	budgets      *cache.LRUCache[[]core.Budget]
}

func NewClient(s store.RecordStore, logger *log.Logger) *Client {
	return &Client{
		store:  s,
		logger: logger.WithComponent(log.ComponentQuery),
		// Last-known-good copies, one entry per collection, kept until
		// explicitly invalidated.
		transactions: cache.NewLRUCache[[]core.Transaction](1, 0),
		categories:   cache.NewLRUCache[[]core.Category](1, 0),
		budgets:      cache.NewLRUCache[[]core.Budget](1, 0),
	}
}

// Fetch reads all three collections concurrently and returns them as
// one snapshot, normalized. On failure it falls back to the cached
// copies and marks the snapshot stale; with nothing cached the
// TransportError surfaces.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := c.store.ListTransactions(gctx)
		if err != nil {
			return &TransportError{Collection: CollectionTransaction, Err: err}
		}
		snap.Transactions = core.NormalizeTransactions(txs)
		return nil
	})
	g.Go(func() error {
		cats, err := c.store.ListCategories(gctx)
		if err != nil {
			return &TransportError{Collection: CollectionCategory, Err: err}
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		buds, err := c.store.ListBudgets(gctx)
		if err != nil {
			return &TransportError{Collection: CollectionBudget, Err: err}
		}
		snap.Budgets = buds
		return nil
	})

	if err := g.Wait(); err != nil {
		cached, ok := c.cached()
		if !ok {
			return Snapshot{}, err
		}
		c.logger.WarnContext(ctx, "store fetch failed, serving last known snapshot",
			log.FieldError, err.Error(), log.FieldOperation, log.OpFetch)
		return cached, nil
	}

	c.transactions.Set(CollectionTransaction, snap.Transactions)
	c.categories.Set(CollectionCategory, snap.Categories)
	c.budgets.Set(CollectionBudget, snap.Budgets)
	return snap, nil
}

func (c *Client) cached() (Snapshot, bool) {
	txs, okT := c.transactions.Get(CollectionTransaction)
	cats, okC := c.categories.Get(CollectionCategory)
	buds, okB := c.budgets.Get(CollectionBudget)
	if !okT || !okC || !okB {
		return Snapshot{}, false
	}
	return Snapshot{Transactions: txs, Categories: cats, Budgets: buds, Stale: true}, true
}

// Invalidate drops the cached copy of one collection, or all of them
// for an unknown name. Mutation paths call this so the next Fetch
// cannot serve a pre-mutation snapshot as current.
func (c *Client) Invalidate(collection string) {
	switch collection {
	case CollectionTransaction:
		c.transactions.Delete(CollectionTransaction)
	case CollectionCategory:
		c.categories.Delete(CollectionCategory)
	case CollectionBudget:
		c.budgets.Delete(CollectionBudget)
	default:
		c.transactions.Delete(CollectionTransaction)
		c.categories.Delete(CollectionCategory)
		c.budgets.Delete(CollectionBudget)
	}
}
