package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

// ConversationRepository encapsulates ticket conversation persistence.
type ConversationRepository interface {
	Create(ctx context.Context, userID, channelID int64) error
	GetByChannel(ctx context.Context, channelID int64) (*domain.TicketConversation, error)
	AdvanceState(ctx context.Context, channelID int64, state domain.ConversationState, isReportingMember bool) error
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates the repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

// Create inserts a record in the started state. The insert is idempotent on
// channel_id so redelivered open events cannot produce duplicate records.
func (r *conversationRepository) Create(ctx context.Context, userID, channelID int64) error {
	const query = `
        INSERT INTO ticket_conversations (discord_user_id, channel_id, conversation_state, updated_at)
        VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
        ON CONFLICT (channel_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, channelID, domain.ConversationStarted)
	return err
}

func (r *conversationRepository) GetByChannel(ctx context.Context, channelID int64) (*domain.TicketConversation, error) {
	const query = `
        SELECT id, discord_user_id, channel_id, conversation_state, is_reporting_member, created_at, updated_at
        FROM ticket_conversations WHERE channel_id=$1`

	var conv domain.TicketConversation
	if err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.ChannelID,
		&conv.State,
		&conv.IsReportingMember,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &conv, nil
}

// AdvanceState routes a started conversation to one of the terminal states.
// The started guard in the WHERE clause keeps the transition monotonic even
// under concurrent redelivery; an already-advanced record yields ErrNoRows.
func (r *conversationRepository) AdvanceState(ctx context.Context, channelID int64, state domain.ConversationState, isReportingMember bool) error {
	const query = `
        UPDATE ticket_conversations
        SET conversation_state=$1, is_reporting_member=$2, updated_at=CURRENT_TIMESTAMP
        WHERE channel_id=$3 AND conversation_state=$4`

	cmd, err := r.pool.Exec(ctx, query, state, isReportingMember, channelID, domain.ConversationStarted)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
