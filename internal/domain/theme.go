package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// StoredTheme is a theme imported into the local library.
type StoredTheme struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Source    []byte    `db:"source" json:"-"`
	RuleCount int       `db:"rule_count" json:"rule_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var themeNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

func (t *StoredTheme) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return errors.New("theme name cannot be empty")
	}

	if len(name) > 64 {
		return errors.New("theme name cannot exceed 64 characters")
	}

	if !themeNamePattern.MatchString(name) {
		return errors.New("theme name may only contain lowercase letters, digits, '.', '_' and '-'")
	}

	if len(t.Source) == 0 {
		return errors.New("theme source cannot be empty")
	}

	return nil
}
