package theme

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"scopetheme/internal/domain"
	"scopetheme/internal/repository"
)

// Manager serves built-in themes and, when given a repository, themes
// imported into the local library. Parsed resolvers are cached.
type Manager struct {
	repo repository.ThemeRepository

	mu    sync.RWMutex
	cache map[string]*Resolver
}

// NewManager creates a manager. repo may be nil, in which case only the
// built-in themes are available.
func NewManager(repo repository.ThemeRepository) *Manager {
	return &Manager{
		repo:  repo,
		cache: make(map[string]*Resolver),
	}
}

// Get returns the resolver for a theme, loading it on first use.
func (m *Manager) Get(ctx context.Context, name string) (*Resolver, error) {
	m.mu.RLock()
	r, ok := m.cache[name]
	m.mu.RUnlock()
	if ok {
		return r, nil
	}

	data, err := m.source(ctx, name)
	if err != nil {
		return nil, err
	}

	r, err = Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme %q: %w", name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// another caller may have won the race; keep the first
	if cached, ok := m.cache[name]; ok {
		return cached, nil
	}
	m.cache[name] = r
	return r, nil
}

func (m *Manager) source(ctx context.Context, name string) ([]byte, error) {
	if isBuiltin(name) {
		return BuiltinSource(name)
	}

	if m.repo == nil {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	stored, err := m.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrThemeNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
		}
		return nil, fmt.Errorf("failed to read theme library: %w", err)
	}
	return stored.Source, nil
}

// Default returns the built-in default theme.
func (m *Manager) Default() *Resolver {
	r, err := m.Get(context.Background(), DefaultThemeName)
	if err != nil {
		// embedded data is fixed at build time
		panic(fmt.Sprintf("built-in theme %q: %v", DefaultThemeName, err))
	}
	return r
}

// List returns built-in and imported theme names, sorted.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	names := BuiltinNames()

	if m.repo != nil {
		stored, err := m.repo.List(ctx, repository.ThemeFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list theme library: %w", err)
		}
		for _, t := range stored {
			names = append(names, t.Name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Exists reports whether a theme can be loaded by name.
func (m *Manager) Exists(ctx context.Context, name string) bool {
	_, err := m.source(ctx, name)
	return err == nil
}

// IsBuiltin reports whether name is an embedded theme.
func (m *Manager) IsBuiltin(name string) bool {
	return isBuiltin(name)
}

// Import validates a theme and stores it in the library. An existing
// imported theme of the same name is replaced when replace is set.
func (m *Manager) Import(ctx context.Context, name string, data []byte, replace bool) (*Resolver, error) {
	if m.repo == nil {
		return nil, errors.New("no theme library configured")
	}
	if isBuiltin(name) {
		return nil, fmt.Errorf("%w: %s", ErrBuiltinTheme, name)
	}

	r, err := Parse(name, data)
	if err != nil {
		return nil, err
	}

	stored := &domain.StoredTheme{
		Name:      name,
		Source:    data,
		RuleCount: len(r.Rules()),
	}

	err = m.repo.Create(ctx, stored)
	if errors.Is(err, repository.ErrThemeExists) && replace {
		err = m.repo.Update(ctx, stored)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store theme: %w", err)
	}

	m.mu.Lock()
	m.cache[name] = r
	m.mu.Unlock()

	return r, nil
}

// Remove deletes an imported theme.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if isBuiltin(name) {
		return fmt.Errorf("%w: %s", ErrBuiltinTheme, name)
	}
	if m.repo == nil {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	if err := m.repo.Delete(ctx, name); err != nil {
		if errors.Is(err, repository.ErrThemeNotFound) {
			return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
		}
		return err
	}

	m.mu.Lock()
	delete(m.cache, name)
	m.mu.Unlock()

	return nil
}
