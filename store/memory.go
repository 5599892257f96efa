package store

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu       sync.RWMutex
	currency int
}

func NewMemoryStore(initial int) *MemoryStore {
	if initial < 0 {
		initial = 0
	}
	return &MemoryStore{currency: initial}
}

func (s *MemoryStore) LoadCurrency(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency, nil
}

func (s *MemoryStore) SaveCurrency(ctx context.Context, amount int) error {
	if amount < 0 {
		return ErrNegativeCurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = amount
	return nil
}

func (s *MemoryStore) AddCurrency(ctx context.Context, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currency+delta < 0 {
		return s.currency, ErrNegativeCurrency
	}
	s.currency += delta
	return s.currency, nil
}

func (s *MemoryStore) SpendCurrency(ctx context.Context, amount int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount < 0 || s.currency < amount {
		return false, s.currency, nil
	}
	s.currency -= amount
	return true, s.currency, nil
}
