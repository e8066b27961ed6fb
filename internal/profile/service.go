// Package profile manages the display name and the cosmetic appearance
// preferences persisted for the account page.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"list-market/internal/domain"
	"list-market/internal/storage"

	"go.uber.org/zap"
)

var ErrEmptyName = errors.New("display name must not be empty")

// Theme is the light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Service defines the profile operations.
type Service interface {
	UpdateName(ctx context.Context, name string) error
	Theme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, theme Theme) error
	CustomTheme(ctx context.Context) (domain.CustomTheme, error)
	SetCustomTheme(ctx context.Context, theme domain.CustomTheme) error
	ResetCustomTheme(ctx context.Context) (domain.CustomTheme, error)
}

type service struct {
	store  storage.Store
	logger *zap.Logger
}

// New creates a profile service persisting through the given store.
func New(store storage.Store, logger *zap.Logger) Service {
	return &service{store: store, logger: logger}
}

func (s *service) UpdateName(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if err := s.store.Set(ctx, storage.KeyUserName, name); err != nil {
		return fmt.Errorf("failed to persist user name: %w", err)
	}
	return nil
}

// Theme returns the stored preference; anything unrecognized reads as
// light.
func (s *service) Theme(ctx context.Context) (Theme, error) {
	value, err := s.store.Get(ctx, storage.KeyTheme)
	if err != nil && err != storage.ErrKeyNotFound {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	if Theme(value) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (s *service) SetTheme(ctx context.Context, theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.store.Set(ctx, storage.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// CustomTheme returns the stored appearance settings; missing or
// unparseable data recovers as the defaults.
func (s *service) CustomTheme(ctx context.Context) (domain.CustomTheme, error) {
	raw, err := s.store.Get(ctx, storage.KeyCustomTheme)
	if err != nil {
		if err == storage.ErrKeyNotFound {
			return domain.DefaultCustomTheme(), nil
		}
		return domain.CustomTheme{}, fmt.Errorf("failed to read custom theme: %w", err)
	}

	var theme domain.CustomTheme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil {
		s.logger.Warn("Discarding malformed stored custom theme", zap.Error(err))
		return domain.DefaultCustomTheme(), nil
	}
	return theme, nil
}

func (s *service) SetCustomTheme(ctx context.Context, theme domain.CustomTheme) error {
	raw, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("failed to encode custom theme: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyCustomTheme, string(raw)); err != nil {
		return fmt.Errorf("failed to persist custom theme: %w", err)
	}
	return nil
}

func (s *service) ResetCustomTheme(ctx context.Context) (domain.CustomTheme, error) {
	theme := domain.DefaultCustomTheme()
	if err := s.SetCustomTheme(ctx, theme); err != nil {
		return domain.CustomTheme{}, err
	}
	return theme, nil
}
