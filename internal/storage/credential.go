package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
)

// Credential is an LLM API credential supplied at runtime.
// It overrides whatever the environment configured for the same provider.
type Credential struct {
	Provider  string
	APIKey    string
	Model     string
	UpdatedAt time.Time
}

// CredentialRepository persists runtime LLM credentials.
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a repository backed by db.
func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Save upserts the credential for its provider.
func (r *CredentialRepository) Save(ctx context.Context, cred Credential) error {
	if cred.Provider == "" || cred.APIKey == "" {
		return fmt.Errorf("%w: provider and api key are required", apperrors.ErrInvalidInput)
	}

	query := `
	INSERT INTO credentials (provider, api_key, model, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(provider) DO UPDATE SET
		api_key = excluded.api_key,
		model = excluded.model,
		updated_at = excluded.updated_at
	`

	if _, err := r.db.conn.ExecContext(ctx, query, cred.Provider, cred.APIKey, cred.Model, now().Unix()); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// Get returns the stored credential for provider, or ErrNotFound.
func (r *CredentialRepository) Get(ctx context.Context, provider string) (Credential, error) {
	query := `SELECT provider, api_key, model, updated_at FROM credentials WHERE provider = ?`

	var cred Credential
	var updatedAt int64
	err := r.db.conn.QueryRowContext(ctx, query, provider).
		Scan(&cred.Provider, &cred.APIKey, &cred.Model, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, apperrors.ErrNotFound
	}
	if err != nil {
		return Credential{}, fmt.Errorf("failed to load credential: %w", err)
	}

	cred.UpdatedAt = time.Unix(updatedAt, 0)
	return cred, nil
}

// Delete removes the credential for provider. Deleting a missing
// credential is not an error.
func (r *CredentialRepository) Delete(ctx context.Context, provider string) error {
	if _, err := r.db.conn.ExecContext(ctx, `DELETE FROM credentials WHERE provider = ?`, provider); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
