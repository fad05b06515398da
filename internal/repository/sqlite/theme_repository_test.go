package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopetheme/internal/domain"
	"scopetheme/internal/repository"
)

func setupTestThemeDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "themes.db")

	db, err := NewDB(Config{Path: dbPath})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func newStoredTheme(name string) *domain.StoredTheme {
	return &domain.StoredTheme{
		Name:      name,
		Source:    []byte("<plist><dict/></plist>"),
		RuleCount: 3,
	}
}

func TestThemeCreate(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))
	ctx := context.Background()

	theme := newStoredTheme("solarized")
	require.NoError(t, repo.Create(ctx, theme))

	assert.NotZero(t, theme.ID)
	assert.False(t, theme.CreatedAt.IsZero())
	assert.False(t, theme.UpdatedAt.IsZero())

	got, err := repo.GetByName(ctx, "solarized")
	require.NoError(t, err)
	assert.Equal(t, theme.ID, got.ID)
	assert.Equal(t, theme.Source, got.Source)
	assert.Equal(t, 3, got.RuleCount)
}

func TestThemeCreateDuplicate(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStoredTheme("nord")))

	err := repo.Create(ctx, newStoredTheme("nord"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrThemeExists)
}

func TestThemeCreateInvalid(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))

	err := repo.Create(context.Background(), &domain.StoredTheme{Name: "Bad Name", Source: []byte("x")})
	assert.Error(t, err)
}

func TestThemeGetByName_NotFound(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))

	_, err := repo.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrThemeNotFound)
}

func TestThemeUpdate(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))
	ctx := context.Background()

	theme := newStoredTheme("gruvbox")
	require.NoError(t, repo.Create(ctx, theme))

	theme.Source = []byte("<plist><dict><key>name</key><string>gruvbox</string></dict></plist>")
	theme.RuleCount = 7
	require.NoError(t, repo.Update(ctx, theme))

	got, err := repo.GetByName(ctx, "gruvbox")
	require.NoError(t, err)
	assert.Equal(t, theme.Source, got.Source)
	assert.Equal(t, 7, got.RuleCount)

	err = repo.Update(ctx, newStoredTheme("missing"))
	assert.ErrorIs(t, err, repository.ErrThemeNotFound)
}

func TestThemeDelete(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStoredTheme("dracula")))
	require.NoError(t, repo.Delete(ctx, "dracula"))

	_, err := repo.GetByName(ctx, "dracula")
	assert.ErrorIs(t, err, repository.ErrThemeNotFound)

	err = repo.Delete(ctx, "dracula")
	assert.ErrorIs(t, err, repository.ErrThemeNotFound)
}

func TestThemeListAndCount(t *testing.T) {
	repo := NewThemeRepository(setupTestThemeDB(t))
	ctx := context.Background()

	for _, name := range []string{"solarized-light", "monokai", "solarized-dark", "solar_flare"} {
		require.NoError(t, repo.Create(ctx, newStoredTheme(name)))
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	all, err := repo.List(ctx, repository.ThemeFilter{})
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, th := range all {
		names[i] = th.Name
	}
	assert.Equal(t, []string{"monokai", "solar_flare", "solarized-dark", "solarized-light"}, names)

	t.Run("prefix", func(t *testing.T) {
		got, err := repo.List(ctx, repository.ThemeFilter{NamePrefix: "solarized"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("underscore is literal", func(t *testing.T) {
		got, err := repo.List(ctx, repository.ThemeFilter{NamePrefix: "solar_"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "solar_flare", got[0].Name)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := repo.List(ctx, repository.ThemeFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "solar_flare", got[0].Name)
	})
}
