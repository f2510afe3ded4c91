package bot

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/observability"
	"github.com/spec-kit/guild-support-bot/internal/service"
	"github.com/spec-kit/guild-support-bot/internal/worker"
)

type memoryConversationRepo struct {
	records map[int64]*domain.TicketConversation
	nextID  int64
}

func (m *memoryConversationRepo) Create(_ context.Context, userID, channelID int64) error {
	if m.records == nil {
		m.records = make(map[int64]*domain.TicketConversation)
	}
	if _, exists := m.records[channelID]; exists {
		return nil
	}
	m.nextID++
	m.records[channelID] = &domain.TicketConversation{
		ID: m.nextID, UserID: userID, ChannelID: channelID, State: domain.ConversationStarted,
	}
	return nil
}

func (m *memoryConversationRepo) GetByChannel(_ context.Context, channelID int64) (*domain.TicketConversation, error) {
	rec, ok := m.records[channelID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *rec
	return &copied, nil
}

func (m *memoryConversationRepo) AdvanceState(_ context.Context, channelID int64, state domain.ConversationState, isReportingMember bool) error {
	rec, ok := m.records[channelID]
	if !ok || rec.State != domain.ConversationStarted {
		return pgx.ErrNoRows
	}
	rec.State = state
	rec.IsReportingMember = &isReportingMember
	return nil
}

type memoryAliasRepo struct {
	aliases map[int64]string
}

func (m *memoryAliasRepo) Save(_ context.Context, userID int64, robloxUsername string) error {
	if m.aliases == nil {
		m.aliases = make(map[int64]string)
	}
	m.aliases[userID] = robloxUsername
	return nil
}

func (m *memoryAliasRepo) Get(_ context.Context, userID int64) (*domain.AliasRecord, error) {
	alias, ok := m.aliases[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.AliasRecord{UserID: userID, RobloxUsername: alias}, nil
}

type memoryPlatform struct {
	nextID int64
}

func (p *memoryPlatform) SendMessage(context.Context, domain.SendMessageDirective) error {
	return nil
}

func (p *memoryPlatform) CreateChannel(_ context.Context, d domain.CreateChannelDirective) (domain.Channel, error) {
	p.nextID++
	return domain.Channel{ID: 900 + p.nextID, Name: d.Name}, nil
}

func (p *memoryPlatform) DeleteChannel(context.Context, domain.DeleteChannelDirective) error {
	return nil
}

func newTestDispatcher(aliasRepo *memoryAliasRepo) *Dispatcher {
	logger := zap.NewNop()
	plat := &memoryPlatform{}
	aliases := service.NewAliasService(service.AliasDependencies{AliasRepo: aliasRepo, Logger: logger})
	tickets := service.NewTicketService(service.TicketDependencies{
		ConversationRepo: &memoryConversationRepo{},
		Platform:         plat,
		Scheduler:        worker.NewCloseScheduler(plat, logger),
		Logger:           logger,
		CloseDelay:       time.Hour,
	})
	emergency := service.NewEmergencyService(service.EmergencyDependencies{Aliases: aliases, Logger: logger})
	return NewDispatcher(Dependencies{
		Tickets:   tickets,
		Emergency: emergency,
		Aliases:   aliases,
		Metrics:   observability.NewMetrics(),
		Logger:    logger,
	})
}

func testGuild() domain.Guild {
	return domain.Guild{ID: 1, Roles: []domain.Role{
		{ID: 10, Name: "Staff"},
		{ID: 20, Name: "Members"},
	}}
}

func TestHandleMessageIgnoresBots(t *testing.T) {
	d := newTestDispatcher(&memoryAliasRepo{})

	event := domain.MessageEvent{
		Author:  domain.Member{ID: 1, Bot: true},
		Channel: domain.Channel{ID: 5, Name: "general"},
		Guild:   testGuild(),
		Content: "need help",
	}
	assert.Empty(t, d.HandleMessage(context.Background(), event))
}

func TestHandleMessageEmitsEmergencyAlert(t *testing.T) {
	aliasRepo := &memoryAliasRepo{aliases: map[int64]string{42: "Builder123"}}
	d := newTestDispatcher(aliasRepo)

	event := domain.MessageEvent{
		Author:  domain.Member{ID: 42, Username: "alex"},
		Channel: domain.Channel{ID: 5, Name: "general"},
		Guild:   testGuild(),
		Content: "i need help right now",
	}
	directives := d.HandleMessage(context.Background(), event)
	require.Len(t, directives, 1)
	assert.Contains(t, directives[0].SendMessage.Content, "Builder123")
}

func TestTicketCommandFlow(t *testing.T) {
	d := newTestDispatcher(&memoryAliasRepo{})

	open := domain.InteractionEvent{
		Command: "ticket",
		User:    domain.Member{ID: 42, Username: "Alex", DisplayName: "Alex", RoleNames: []string{"Verified"}},
		Channel: domain.Channel{ID: 5, Name: "general"},
		Guild:   testGuild(),
	}
	directives := d.HandleInteraction(context.Background(), open)
	require.Len(t, directives, 3)
	// Create record, prompt in the new ticket channel, ephemeral confirmation
	// in the invoking channel.
	require.Equal(t, domain.DirectiveCreateChannel, directives[0].Type)
	assert.Contains(t, directives[1].SendMessage.Content, "report a Member/Allie")
	assert.True(t, directives[2].SendMessage.Ephemeral)
	assert.Contains(t, directives[2].SendMessage.Content, "Your ticket has been created")

	// A yes reply in the ticket channel routes the conversation.
	reply := domain.MessageEvent{
		Author:  open.User,
		Channel: domain.Channel{ID: directives[1].SendMessage.ChannelID, Name: "ticket-alex"},
		Guild:   testGuild(),
		Content: "yes",
	}
	routed := d.HandleMessage(context.Background(), reply)
	require.Len(t, routed, 1)
	assert.Contains(t, routed[0].SendMessage.Content, "send proof")

	assert.Equal(t, int64(3), d.metrics.DirectiveCount("send_message"))
	assert.Equal(t, int64(1), d.metrics.DirectiveCount("create_channel"))
}

func TestUnauthorizedCommandBecomesEphemeralRejection(t *testing.T) {
	d := newTestDispatcher(&memoryAliasRepo{})

	event := domain.InteractionEvent{
		Command: "ticket",
		User:    domain.Member{ID: 42, Username: "alex", RoleNames: []string{"Members"}},
		Channel: domain.Channel{ID: 5, Name: "general"},
		Guild:   testGuild(),
	}
	directives := d.HandleInteraction(context.Background(), event)
	require.Len(t, directives, 1)
	assert.True(t, directives[0].SendMessage.Ephemeral)
	assert.Contains(t, directives[0].SendMessage.Content, "Verified role")
}

func TestUnknownCommandRejected(t *testing.T) {
	d := newTestDispatcher(&memoryAliasRepo{})

	event := domain.InteractionEvent{
		Command: "dance",
		User:    domain.Member{ID: 42},
		Channel: domain.Channel{ID: 5},
	}
	directives := d.HandleInteraction(context.Background(), event)
	require.Len(t, directives, 1)
	assert.Contains(t, directives[0].SendMessage.Content, "Unknown command")
}

func TestRobloxVerifyCommand(t *testing.T) {
	aliasRepo := &memoryAliasRepo{}
	d := newTestDispatcher(aliasRepo)

	event := domain.InteractionEvent{
		Command: "roblox_verify",
		Options: map[string]string{"roblox_username": "Builder123"},
		User:    domain.Member{ID: 42, Username: "alex", RoleNames: []string{"Verified"}},
		Channel: domain.Channel{ID: 5, Name: "general"},
		Guild:   testGuild(),
	}
	directives := d.HandleInteraction(context.Background(), event)
	require.Len(t, directives, 1)
	assert.Contains(t, directives[0].SendMessage.Content, "Builder123")
	assert.Equal(t, "Builder123", aliasRepo.aliases[42])
}
