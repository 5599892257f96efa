package store

import (
	"context"
	"errors"
)

var ErrNegativeCurrency = errors.New("currency cannot be negative")

// CurrencyStore keeps the only state that survives a session. It is shared
// by every session, so changes go through AddCurrency and SpendCurrency,
// which apply atomically against the stored balance.
type CurrencyStore interface {
	LoadCurrency(ctx context.Context) (int, error)
	SaveCurrency(ctx context.Context, amount int) error
	// AddCurrency adds delta and returns the new balance.
	AddCurrency(ctx context.Context, delta int) (int, error)
	// SpendCurrency deducts amount only when the balance covers it and
	// returns the balance afterwards.
	SpendCurrency(ctx context.Context, amount int) (bool, int, error)
}
