package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/events"
	"github.com/spec-kit/guild-support-bot/internal/persistence"
	"github.com/spec-kit/guild-support-bot/internal/repository"
	"github.com/spec-kit/guild-support-bot/internal/roles"
	"github.com/spec-kit/guild-support-bot/pkg/util"
)

// AliasService stores and resolves Roblox aliases for guild members.
type AliasService struct {
	aliases    repository.AliasRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AliasDependencies bundles collaborators for the alias service.
type AliasDependencies struct {
	AliasRepo  repository.AliasRepository
	Cache      *persistence.Redis
	CacheTTL   time.Duration
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAliasService constructs the service.
func NewAliasService(deps AliasDependencies) *AliasService {
	return &AliasService{
		aliases:    deps.AliasRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Save persists the member's alias. Requires the verified role; a store
// failure surfaces as STORE_UNAVAILABLE so the caller can tell the user to
// retry later. A new save overwrites the prior alias.
func (s *AliasService) Save(ctx context.Context, member domain.Member, robloxUsername string) error {
	if !roles.IsVerified(member.RoleNames) {
		return util.NewUnauthorized("You must have the Verified role to use this command.")
	}

	robloxUsername = strings.TrimSpace(robloxUsername)
	if robloxUsername == "" {
		return util.NewValidationError("roblox username is required", nil)
	}

	if err := s.aliases.Save(ctx, member.ID, robloxUsername); err != nil {
		return util.NewStoreUnavailable(err)
	}

	s.cacheSet(ctx, member.ID, robloxUsername)
	s.publish(ctx, events.Event{
		Type:    events.EventAliasSaved,
		UserID:  member.ID,
		Payload: events.AliasSavedPayload{RobloxUsername: robloxUsername},
	})
	return nil
}

// Lookup resolves the alias for a user, reading through the redis cache.
// A missing alias returns ("", nil); only store failures return an error.
func (s *AliasService) Lookup(ctx context.Context, userID int64) (string, error) {
	if cached, ok := s.cacheGet(ctx, userID); ok {
		return cached, nil
	}

	record, err := s.aliases.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	s.cacheSet(ctx, userID, record.RobloxUsername)
	return record.RobloxUsername, nil
}

func (s *AliasService) cacheKey(userID int64) string {
	return fmt.Sprintf("alias:%d", userID)
}

func (s *AliasService) cacheGet(ctx context.Context, userID int64) (string, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return "", false
	}
	val, err := s.cache.Client.Get(ctx, s.cacheKey(userID)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *AliasService) cacheSet(ctx context.Context, userID int64, alias string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Set(ctx, s.cacheKey(userID), alias, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("alias cache write failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (s *AliasService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
