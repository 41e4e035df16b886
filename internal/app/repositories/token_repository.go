package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sekolahku/siswa-api/internal/pkg/dberrors"
	"github.com/sekolahku/siswa-api/internal/pkg/logger"
)

// TokenRepository maintains the revocation list for access tokens.
// Rows outlive the tokens they revoke and are purged once expired.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Revoke records a token's jti so the auth gate rejects it from now on
func (r *TokenRepository) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("revoked_tokens").
		Columns("jti", "user_id", "expires_at", "revoked_at").
		Values(jti, userID, expiresAt, time.Now()).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		// Revoking an already-revoked token is not an error
		if dberrors.IsDuplicateConstraintError(err, "revoked_tokens_jti_key") {
			return nil
		}
		logger.Error().Err(err).Str("jti", jti).Int64("userID", userID).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token's jti is on the revocation list
func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("revoked_tokens").
		Where(squirrel.Eq{"jti": jti}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building revocation check SQL")
		return false, fmt.Errorf("failed to build revocation check query: %w", err)
	}

	var revoked bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&revoked); err != nil {
		logger.Error().Err(err).Str("jti", jti).Msg("Error checking token revocation")
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}

	return revoked, nil
}

// PurgeExpired removes revocation rows whose tokens have expired anyway
func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("revoked_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build purge query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging expired tokens: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
