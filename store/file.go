package store

import (
	"context"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type currencyFile struct {
	Currency int `yaml:"currency"`
}

// FileStore keeps the balance in a small YAML file. A missing file reads as zero.
// Read-modify-write operations hold the store mutex for the whole cycle.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) LoadCurrency(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) SaveCurrency(ctx context.Context, amount int) error {
	if amount < 0 {
		return ErrNegativeCurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(amount)
}

func (s *FileStore) AddCurrency(ctx context.Context, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.read()
	if err != nil {
		return 0, err
	}
	if n+delta < 0 {
		return n, ErrNegativeCurrency
	}
	if err := s.write(n + delta); err != nil {
		return n, err
	}
	return n + delta, nil
}

func (s *FileStore) SpendCurrency(ctx context.Context, amount int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.read()
	if err != nil {
		return false, 0, err
	}
	if amount < 0 || n < amount {
		return false, n, nil
	}
	if err := s.write(n - amount); err != nil {
		return false, n, err
	}
	return true, n - amount, nil
}

func (s *FileStore) read() (int, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read currency: %w", err)
	}
	var f currencyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return 0, fmt.Errorf("parse currency %s: %w", s.path, err)
	}
	if f.Currency < 0 {
		return 0, fmt.Errorf("%s: %w", s.path, ErrNegativeCurrency)
	}
	return f.Currency, nil
}

// write replaces the file via rename.
func (s *FileStore) write(amount int) error {
	b, err := yaml.Marshal(currencyFile{Currency: amount})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save currency: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("save currency: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save currency: %w", err)
	}
	return nil
}
