package progress

import (
	"context"
	"github.com/zucenko/gemblocks/store"
)

// Wallet is one session's view of the shared currency store. The store is
// the authority: every change is applied there and the returned balance
// replaces the local one. Earnings the store refused stay pending and are
// retried on the next Load, Add or Spend.
type Wallet struct {
	store   store.CurrencyStore
	balance int
	pending int
}

func NewWallet(s store.CurrencyStore) *Wallet {
	return &Wallet{store: s}
}

// Load refreshes the balance, saving pending earnings first.
func (w *Wallet) Load(ctx context.Context) error {
	if err := w.flush(ctx); err != nil {
		return err
	}
	n, err := w.store.LoadCurrency(ctx)
	if err != nil {
		return err
	}
	w.balance = n
	return nil
}

// Balance includes earnings not yet saved.
func (w *Wallet) Balance() int {
	return w.balance + w.pending
}

func (w *Wallet) CanAfford(amount int) bool {
	return w.Balance() >= amount
}

// Pending is the amount earned but not yet saved.
func (w *Wallet) Pending() int {
	return w.pending
}

func (w *Wallet) Add(ctx context.Context, amount int) error {
	if amount <= 0 {
		return nil
	}
	w.pending += amount
	return w.flush(ctx)
}

// Spend deducts amount only when the stored balance covers it.
// Nothing is spent while pending earnings cannot be saved.
func (w *Wallet) Spend(ctx context.Context, amount int) (bool, error) {
	if amount < 0 {
		return false, nil
	}
	if err := w.flush(ctx); err != nil {
		return false, err
	}
	ok, n, err := w.store.SpendCurrency(ctx, amount)
	if err != nil {
		return false, err
	}
	w.balance = n
	return ok, nil
}

func (w *Wallet) flush(ctx context.Context) error {
	if w.pending == 0 {
		return nil
	}
	n, err := w.store.AddCurrency(ctx, w.pending)
	if err != nil {
		return err
	}
	w.balance = n
	w.pending = 0
	return nil
}
