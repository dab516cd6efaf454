package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventhub/internal/domain"
)

type loginCodeRepository struct {
	DB *sql.DB
}

// NewLoginCodeRepository returns a domain.LoginCodeRepository implemented with Postgres.
func NewLoginCodeRepository(db *sql.DB) domain.LoginCodeRepository {
	return &loginCodeRepository{DB: db}
}

func (r *loginCodeRepository) Create(ctx context.Context, key, userID, codeHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO login_codes (verification_key, user_id, code_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, key, userID, codeHash, expiresAt)
	return err
}

// Consume deletes the matching unexpired code in one statement so a code can
// never be redeemed twice.
func (r *loginCodeRepository) Consume(ctx context.Context, key, codeHash string) (string, bool, error) {
	var userID string
	query := `
		DELETE FROM login_codes
		WHERE verification_key = $1 AND code_hash = $2 AND expires_at > NOW()
		RETURNING user_id
	`
	err := r.DB.QueryRowContext(ctx, query, key, codeHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return userID, true, nil
}
