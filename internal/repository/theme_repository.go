package repository

import (
	"context"
	"errors"

	"scopetheme/internal/domain"
)

var (
	ErrThemeNotFound = errors.New("theme not found in library")
	ErrThemeExists   = errors.New("theme already exists in library")
)

type ThemeRepository interface {
	Create(ctx context.Context, theme *domain.StoredTheme) error
	GetByName(ctx context.Context, name string) (*domain.StoredTheme, error)
	Update(ctx context.Context, theme *domain.StoredTheme) error
	Delete(ctx context.Context, name string) error

	List(ctx context.Context, filter ThemeFilter) ([]*domain.StoredTheme, error)
	Count(ctx context.Context) (int64, error)
}

type ThemeFilter struct {
	NamePrefix string
	Limit      int
	Offset     int
}
