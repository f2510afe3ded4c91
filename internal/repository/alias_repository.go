package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

// AliasRepository defines persistence access for Roblox alias records.
type AliasRepository interface {
	Save(ctx context.Context, userID int64, robloxUsername string) error
	Get(ctx context.Context, userID int64) (*domain.AliasRecord, error)
}

type aliasRepository struct {
	pool *pgxpool.Pool
}

// NewAliasRepository returns a Postgres-backed implementation.
func NewAliasRepository(pool *pgxpool.Pool) AliasRepository {
	return &aliasRepository{pool: pool}
}

// Save upserts the alias for a user, bumping updated_at on overwrite.
func (r *aliasRepository) Save(ctx context.Context, userID int64, robloxUsername string) error {
	const query = `
        INSERT INTO roblox_users (discord_user_id, roblox_username, updated_at)
        VALUES ($1, $2, CURRENT_TIMESTAMP)
        ON CONFLICT (discord_user_id)
        DO UPDATE SET roblox_username = EXCLUDED.roblox_username, updated_at = CURRENT_TIMESTAMP`

	_, err := r.pool.Exec(ctx, query, userID, robloxUsername)
	return err
}

func (r *aliasRepository) Get(ctx context.Context, userID int64) (*domain.AliasRecord, error) {
	const query = `
        SELECT discord_user_id, roblox_username, created_at, updated_at
        FROM roblox_users WHERE discord_user_id=$1`

	var record domain.AliasRecord
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&record.UserID,
		&record.RobloxUsername,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}
