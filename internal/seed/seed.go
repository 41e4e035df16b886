package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/sekolahku/siswa-api/internal/pkg/auth"
)

const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@sekolahku.id"
	defaultAdminPassword = "password"
)

// CreateDefaultData seeds the initial admin account when the users table
// is empty, so a fresh deployment has a login to start from.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int
	if err := dbPool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("error counting users: %w", err)
	}

	if count > 0 {
		lgr.Debug().Int("users", count).Msg("Users already present, skipping seed")
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing default admin password: %w", err)
	}

	_, err = dbPool.Exec(ctx,
		"INSERT INTO users (name, email, password) VALUES ($1, $2, $3)",
		defaultAdminName, defaultAdminEmail, hashed,
	)
	if err != nil {
		return fmt.Errorf("error creating default admin user: %w", err)
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin user created")
	return nil
}
