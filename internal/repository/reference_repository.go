package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/harborbank/banking/internal/models"
)

// ReferenceRepository seeds and reads the language and message-key reference
// tables. Seeding is an insert-or-update keyed by the natural unique name, so
// running it on every startup is safe.
type ReferenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) UpsertLanguage(ctx context.Context, name, code string) error {
	query := `
		INSERT INTO languages (uuid, name, code)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), name, code); err != nil {
		return fmt.Errorf("failed to upsert language %s: %w", name, err)
	}
	return nil
}

func (r *ReferenceRepository) UpsertMessageKey(ctx context.Context, name string) error {
	query := `
		INSERT INTO message_keys (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to upsert message key %s: %w", name, err)
	}
	return nil
}

func (r *ReferenceRepository) ListLanguages(ctx context.Context) ([]models.Language, error) {
	query := `
		SELECT id, uuid, name, code
		FROM languages
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	var languages []models.Language
	for rows.Next() {
		var language models.Language
		if err := rows.Scan(&language.ID, &language.UUID, &language.Name, &language.Code); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		languages = append(languages, language)
	}
	return languages, rows.Err()
}

func (r *ReferenceRepository) ListMessageKeys(ctx context.Context) ([]models.MessageKey, error) {
	query := `
		SELECT id, name
		FROM message_keys
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list message keys: %w", err)
	}
	defer rows.Close()

	var keys []models.MessageKey
	for rows.Next() {
		var key models.MessageKey
		if err := rows.Scan(&key.ID, &key.Name); err != nil {
			return nil, fmt.Errorf("failed to scan message key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
