// Package settings keeps the till configuration in memory and writes every change through to
// the key-value store.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/repository/kv"
)

// Key is the storage key of the persisted settings record.
const Key = "pos-settings"

type record struct {
	Currency   string      `json:"currency"`
	TaxRate    json.Number `json:"taxRate"`
	IsDarkMode bool        `json:"isDarkMode"`
}

type Store struct {
	repo   kv.Repository
	logger *zap.Logger

	mu      sync.Mutex
	loaded  bool
	current domain.Settings
}

func New(repo kv.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repo, logger: logger, current: domain.DefaultSettings()}
}

// Load reads the persisted record. A missing, unreadable or invalid record yields the defaults.
func (s *Store) Load(ctx context.Context) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.read(ctx)
	s.loaded = true
	return s.current
}

// Get returns the current settings, loading them on first use.
func (s *Store) Get(ctx context.Context) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.current = s.read(ctx)
		s.loaded = true
	}
	return s.current
}

// Update validates next, persists the whole record and only then makes it current.
func (s *Store) Update(ctx context.Context, next domain.Settings) (domain.Settings, error) {
	cur, err := domain.ParseCurrency(string(next.Currency))
	if err != nil {
		return domain.Settings{}, err
	}
	next.Currency = cur
	if err := next.Validate(); err != nil {
		return domain.Settings{}, err
	}

	raw, err := json.Marshal(record{
		Currency:   string(next.Currency),
		TaxRate:    json.Number(next.TaxRate.String()),
		IsDarkMode: next.IsDarkMode,
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Put(ctx, Key, raw); err != nil {
		s.logger.Error("settings: persist failed", zap.Error(err))
		return domain.Settings{}, fmt.Errorf("persist settings: %w", err)
	}
	s.current = next
	s.loaded = true
	s.logger.Info("settings: updated",
		zap.String("currency", string(next.Currency)),
		zap.String("tax_rate", next.TaxRate.String()),
		zap.Bool("dark_mode", next.IsDarkMode),
	)
	return next, nil
}

func (s *Store) read(ctx context.Context) domain.Settings {
	raw, err := s.repo.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("settings: read failed, using defaults", zap.Error(err))
		}
		return domain.DefaultSettings()
	}
	got, err := decode(raw)
	if err != nil {
		s.logger.Warn("settings: stored record ignored", zap.Error(err))
		return domain.DefaultSettings()
	}
	return got
}

// decode parses a stored record. Absent fields take their default values.
func decode(raw []byte) (domain.Settings, error) {
	def := domain.DefaultSettings()
	rec := record{
		Currency: string(def.Currency),
		TaxRate:  json.Number(def.TaxRate.String()),
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	cur, err := domain.ParseCurrency(rec.Currency)
	if err != nil {
		return domain.Settings{}, err
	}
	rate, err := decimal.NewFromString(rec.TaxRate.String())
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: tax rate %q", domain.ErrInvalidInput, rec.TaxRate)
	}
	out := domain.Settings{Currency: cur, TaxRate: rate, IsDarkMode: rec.IsDarkMode}
	if err := out.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return out, nil
}
