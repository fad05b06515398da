package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"scopetheme/internal/domain"
	"scopetheme/internal/repository"
)

type ThemeRepository struct {
	db *DB
}

func NewThemeRepository(db *DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

type dbTheme struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Source    []byte    `db:"source"`
	RuleCount int       `db:"rule_count"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (dt *dbTheme) toTheme() *domain.StoredTheme {
	return &domain.StoredTheme{
		ID:        dt.ID,
		Name:      dt.Name,
		Source:    dt.Source,
		RuleCount: dt.RuleCount,
		CreatedAt: dt.CreatedAt,
		UpdatedAt: dt.UpdatedAt,
	}
}

func (r *ThemeRepository) Create(ctx context.Context, theme *domain.StoredTheme) error {
	if err := theme.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO themes (name, source, rule_count)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, strings.TrimSpace(theme.Name), theme.Source, theme.RuleCount)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", repository.ErrThemeExists, theme.Name)
		}
		return fmt.Errorf("failed to insert theme: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	created, err := r.getByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch created theme: %w", err)
	}

	theme.ID = id
	theme.Name = created.Name
	theme.CreatedAt = created.CreatedAt
	theme.UpdatedAt = created.UpdatedAt

	return nil
}

func (r *ThemeRepository) getByID(ctx context.Context, id int64) (*domain.StoredTheme, error) {
	query := `
		SELECT id, name, source, rule_count, created_at, updated_at
		FROM themes
		WHERE id = ?
	`

	var dt dbTheme
	if err := r.db.GetContext(ctx, &dt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", repository.ErrThemeNotFound, id)
		}
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}

	return dt.toTheme(), nil
}

func (r *ThemeRepository) GetByName(ctx context.Context, name string) (*domain.StoredTheme, error) {
	query := `
		SELECT id, name, source, rule_count, created_at, updated_at
		FROM themes
		WHERE name = ?
	`

	var dt dbTheme
	if err := r.db.GetContext(ctx, &dt, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrThemeNotFound, name)
		}
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}

	return dt.toTheme(), nil
}

func (r *ThemeRepository) Update(ctx context.Context, theme *domain.StoredTheme) error {
	if err := theme.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE themes
		SET source = ?, rule_count = ?
		WHERE name = ?
	`

	result, err := r.db.ExecContext(ctx, query, theme.Source, theme.RuleCount, theme.Name)
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", repository.ErrThemeNotFound, theme.Name)
	}

	updated, err := r.GetByName(ctx, theme.Name)
	if err != nil {
		return fmt.Errorf("failed to fetch updated theme: %w", err)
	}
	theme.ID = updated.ID
	theme.UpdatedAt = updated.UpdatedAt

	return nil
}

func (r *ThemeRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM themes WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", repository.ErrThemeNotFound, name)
	}

	return nil
}

func (r *ThemeRepository) List(ctx context.Context, filter repository.ThemeFilter) ([]*domain.StoredTheme, error) {
	query := `
		SELECT id, name, source, rule_count, created_at, updated_at
		FROM themes
	`
	args := []interface{}{}

	if filter.NamePrefix != "" {
		query += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, likePrefix(filter.NamePrefix))
	}

	query += " ORDER BY name ASC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	var rows []dbTheme
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	themes := make([]*domain.StoredTheme, 0, len(rows))
	for i := range rows {
		themes = append(themes, rows[i].toTheme())
	}

	return themes, nil
}

func (r *ThemeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM themes"); err != nil {
		return 0, fmt.Errorf("failed to count themes: %w", err)
	}
	return count, nil
}
