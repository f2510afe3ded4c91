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

	"github.com/spec-kit/guild-support-bot/internal/classify"
	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/events"
	"github.com/spec-kit/guild-support-bot/internal/platform"
	"github.com/spec-kit/guild-support-bot/internal/repository"
	"github.com/spec-kit/guild-support-bot/internal/roles"
	"github.com/spec-kit/guild-support-bot/internal/worker"
	"github.com/spec-kit/guild-support-bot/pkg/util"
)

// TicketChannelPrefix marks channels managed by the ticket lifecycle.
const TicketChannelPrefix = "ticket-"

// TicketService owns the per-channel ticket conversation lifecycle. It holds
// no in-memory ticket state; every decision re-reads the store, so the
// service is restart safe.
type TicketService struct {
	conversations repository.ConversationRepository
	platform      platform.Platform
	scheduler     *worker.CloseScheduler
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	closeDelay    time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	ConversationRepo repository.ConversationRepository
	Platform         platform.Platform
	Scheduler        *worker.CloseScheduler
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	CloseDelay       time.Duration
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	closeDelay := deps.CloseDelay
	if closeDelay <= 0 {
		closeDelay = 5 * time.Second
	}
	return &TicketService{
		conversations: deps.ConversationRepo,
		platform:      deps.Platform,
		scheduler:     deps.Scheduler,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		closeDelay:    closeDelay,
	}
}

// TicketChannelName derives the deterministic channel name for a member:
// lowercased display name with spaces replaced by hyphens, ticket- prefix.
func TicketChannelName(member domain.Member) string {
	name := member.DisplayName
	if name == "" {
		name = member.Username
	}
	return TicketChannelPrefix + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// OpenTicket creates a restricted support channel for the member, persists a
// conversation record in the started state and emits the initial yes/no
// prompt. Fails with UNAUTHORIZED without the verified role and with
// TICKET_ALREADY_OPEN when the member's ticket channel already exists.
func (s *TicketService) OpenTicket(ctx context.Context, member domain.Member, guild domain.Guild) (domain.Channel, []domain.Directive, error) {
	if !roles.IsVerified(member.RoleNames) {
		return domain.Channel{}, nil, util.NewUnauthorized("You must have the Verified role to use this command.")
	}

	name := TicketChannelName(member)
	if existing, ok := guild.ChannelByName(name); ok {
		return domain.Channel{}, nil, util.NewTicketAlreadyOpen(existing.Name, existing.ID)
	}

	visibility := []domain.ChannelPermission{
		{Target: domain.PermissionEveryone, Read: false, Write: false},
		{Target: domain.PermissionMember, TargetID: member.ID, Read: true, Write: true},
	}
	if staffRole, ok := roles.Find(guild, roles.StaffRole); ok {
		visibility = append(visibility, domain.ChannelPermission{
			Target: domain.PermissionRole, TargetID: staffRole.ID, Read: true, Write: true,
		})
	}

	topic := fmt.Sprintf("Support ticket for %s", displayName(member))
	created, err := s.platform.CreateChannel(ctx, domain.CreateChannelDirective{
		GuildID:    guild.ID,
		Name:       name,
		Topic:      topic,
		Visibility: visibility,
	})
	if err != nil {
		return domain.Channel{}, nil, err
	}

	// The record is best-effort: a store outage must not lose the channel
	// that was just created for the user.
	if err := s.conversations.Create(ctx, member.ID, created.ID); err != nil {
		s.logger.Error("failed to persist ticket conversation",
			zap.Int64("channel_id", created.ID), zap.Error(err))
	}

	prompt := fmt.Sprintf(
		"%s Thank you for opening a ticket! 🎫\n\n"+
			"I need to ask you a quick question first:\n"+
			"**Are you here to report a Member/Allie?** (Please respond with yes or no)",
		member.Mention())

	s.publish(ctx, events.Event{
		Type:      events.EventTicketOpened,
		GuildID:   guild.ID,
		ChannelID: created.ID,
		UserID:    member.ID,
		Payload:   events.TicketOpenedPayload{ChannelName: created.Name},
	})

	// The create is already performed; its directive leads the list so the
	// connector sees the full outbound record for this event.
	return created, []domain.Directive{
		domain.NewCreateChannel(guild.ID, name, topic, visibility),
		domain.NewSendMessage(created.ID, prompt),
	}, nil
}

// CloseTicket schedules deletion of a ticket channel after the close delay.
// Staff only; the channel must carry the ticket- prefix.
func (s *TicketService) CloseTicket(ctx context.Context, member domain.Member, channel domain.Channel) ([]domain.Directive, error) {
	if !roles.IsStaff(member.RoleNames) {
		return nil, util.NewUnauthorized("You must have the Staff role to use this command.")
	}
	if !strings.HasPrefix(channel.Name, TicketChannelPrefix) {
		return nil, util.NewWrongChannelKind("This command can only be used in ticket channels.")
	}

	s.scheduler.Schedule(channel, s.closeDelay)

	s.publish(ctx, events.Event{
		Type:      events.EventTicketCloseScheduled,
		ChannelID: channel.ID,
		UserID:    member.ID,
		Payload: events.TicketCloseScheduledPayload{
			ChannelName: channel.Name,
			AfterDelay:  s.closeDelay,
		},
	})

	ack := fmt.Sprintf("Closing ticket in %d seconds...", int(s.closeDelay.Seconds()))
	return []domain.Directive{
		domain.NewSendMessage(channel.ID, ack),
		domain.NewDeleteChannel(channel.ID, s.closeDelay),
	}, nil
}

// HandleMessage consumes a message in a ticket channel and advances the
// conversation when it is the first yes/no-classified reply on a started
// record. Everything else is a no-op, so redelivered or Unknown messages are
// idempotent, and store read failures degrade to silence.
func (s *TicketService) HandleMessage(ctx context.Context, event domain.MessageEvent) []domain.Directive {
	if !strings.HasPrefix(event.Channel.Name, TicketChannelPrefix) {
		return nil
	}

	conv, err := s.conversations.GetByChannel(ctx, event.Channel.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("ticket state check failed",
				zap.Int64("channel_id", event.Channel.ID), zap.Error(err))
		}
		return nil
	}
	var (
		next              domain.ConversationState
		isReportingMember bool
		reply             string
	)
	staffMention := roles.Mention(event.Guild, roles.StaffRole)

	switch classify.Classify(event.Content) {
	case classify.Affirmative:
		next = domain.ConversationReportingMember
		isReportingMember = true
		reply = fmt.Sprintf("Ok a %s member is otw, in the meantime Type what happened and send proof.", staffMention)
	case classify.Negative:
		next = domain.ConversationGeneralHelp
		isReportingMember = false
		reply = fmt.Sprintf("Ok then %s Help is otw", staffMention)
	default:
		return nil
	}

	if !domain.IsValidTransition(conv.State, next) {
		return nil
	}

	if err := s.conversations.AdvanceState(ctx, event.Channel.ID, next, isReportingMember); err != nil {
		// ErrNoRows means another delivery already routed the conversation.
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("ticket state transition failed",
				zap.Int64("channel_id", event.Channel.ID), zap.Error(err))
		}
		return nil
	}

	s.publish(ctx, events.Event{
		Type:      events.EventConversationRouted,
		GuildID:   event.Guild.ID,
		ChannelID: event.Channel.ID,
		UserID:    event.Author.ID,
		Payload: events.ConversationRoutedPayload{
			State:             next,
			IsReportingMember: isReportingMember,
		},
	})

	return []domain.Directive{domain.NewSendMessage(event.Channel.ID, reply)}
}

func displayName(member domain.Member) string {
	if member.DisplayName != "" {
		return member.DisplayName
	}
	return member.Username
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
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
